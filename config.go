package main

import (
	"io/ioutil"
	"os"

	"github.com/coreos/pkg/capnslog"
	"gopkg.in/yaml.v2"
)

const moduleFile = "Huck Module Information"

type huckModule struct {
	Package  string `yaml:"Package"`
	Entry    string `yaml:"Entry,omitempty"`
	LogLevel string `yaml:"LogLevel,omitempty"`
}

func readModule(path string) (huckModule, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return huckModule{}, err
	}

	var doc huckModule
	err = yaml.Unmarshal(data, &doc)
	if doc.Entry == "" {
		doc.Entry = "main.huck"
	}
	return doc, err
}

func writeModule(path string, doc huckModule) error {
	out, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}

	return ioutil.WriteFile(path, out, 0644)
}

// setupLogging sends every package logger to stderr at the given level. An
// empty level keeps capnslog's default.
func setupLogging(level string) error {
	capnslog.SetFormatter(capnslog.NewPrettyFormatter(os.Stderr, false))
	if level == "" {
		return nil
	}

	l, err := capnslog.ParseLevel(level)
	if err != nil {
		return err
	}
	capnslog.SetGlobalLogLevel(l)
	return nil
}
