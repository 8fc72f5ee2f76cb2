package main

import (
	"fmt"
	"os"
	"path/filepath"

	xappdirs "github.com/chasinglogic/appdirs"
)

const (
	appName        = "quetzalmap"
	logFileName    = "quetzalmap.log"
	configFileName = "config.yaml"
)

// appDirs represents the app's local directories for storing logs etc.
type appDirs struct {
	cache    string
	log      string
	settings string
}

func newAppDirs() appDirs {
	ad := xappdirs.New(appName)
	x := appDirs{
		cache:    ad.UserCache(),
		log:      ad.UserLog(),
		settings: ad.UserConfig(),
	}
	return x
}

func (ad appDirs) deleteAll() error {
	for _, p := range []string{ad.log, ad.cache, ad.settings} {
		if err := os.RemoveAll(p); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", p)
	}
	return nil
}

func (ad appDirs) initLogFile() (string, error) {
	if err := os.MkdirAll(ad.log, os.ModePerm); err != nil {
		return "", err
	}
	return filepath.Join(ad.log, logFileName), nil
}

func (ad appDirs) configFile() string {
	return filepath.Join(ad.settings, configFileName)
}
