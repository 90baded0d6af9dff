package main

import (
	"io/ioutil"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml"
)

type Configuration struct {
	DataDir   string `toml:"data-dir"`
	Custodian string `toml:"custodian"`
	Admin     string `toml:"admin"`
}

func Setup(path string) (*Configuration, error) {
	data, err := ioutil.ReadFile(expandHome(path))
	if err != nil {
		return nil, err
	}
	var conf Configuration
	err = toml.Unmarshal(data, &conf)
	if err != nil {
		return nil, err
	}
	if conf.Custodian == "" {
		conf.Custodian = "custody"
	}
	return &conf, nil
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		usr, _ := user.Current()
		path = filepath.Join(usr.HomeDir, path[2:])
	}
	return path
}
