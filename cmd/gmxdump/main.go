// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	gmx "github.com/gmreader/gmx"
)

var (
	verbose       bool
	wantSettings  bool
	wantHelp      bool
	wantSounds    bool
	wantSprites   bool
	wantRooms     bool
	wantAnomalies bool
	wantAll       bool
	configPath    string
)

// config is the optional on-disk configuration gmxdump reads before
// parsing, the way a real batch tool would rather than taking every knob on
// the command line. Its one setting has no command-line flag.
type config struct {
	DisableAnomalyLogging bool `toml:"disable_anomaly_logging"`
}

func loadConfig(path string) (config, error) {
	var cfg config
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func prettyPrint(v interface{}) string {
	buff, _ := json.Marshal(v)
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, buff, "", "\t"); err != nil {
		log.Printf("JSON indent error: %v", err)
		return string(buff)
	}
	return pretty.String()
}

func isDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

func dumpProject(filename string, cfg config) {
	if verbose {
		log.Printf("processing %s", filename)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		log.Printf("error reading %s: %v", filename, err)
		return
	}

	d, err := gmx.NewBytes(data, &gmx.Options{DisableAnomalyLogging: cfg.DisableAnomalyLogging})
	if err != nil {
		log.Printf("error opening %s: %v", filename, err)
		return
	}
	defer d.Close()

	p, err := d.Decode()
	if err != nil {
		log.Printf("error decoding %s: %v", filename, err)
		return
	}

	if p.Generation == gmx.GenerationUnknown {
		fmt.Printf("%s: unrecognized format\n", filename)
		return
	}

	fmt.Printf("%s: generation %s, guid %s\n", filename, p.Generation, p.GUIDString())

	if wantSettings || wantAll {
		fmt.Println(prettyPrint(p.Settings))
	}
	if wantHelp || wantAll {
		fmt.Println(prettyPrint(p.Help))
	}
	if wantSounds || wantAll {
		fmt.Println(prettyPrint(p.Sounds))
	}
	if wantSprites || wantAll {
		fmt.Println(prettyPrint(p.Sprites))
	}
	if wantRooms || wantAll {
		fmt.Println(prettyPrint(p.Rooms))
	}
	if wantAnomalies || wantAll {
		fmt.Println(prettyPrint(p.Anomalies))
	}
}

func dump(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	target := args[0]
	if !isDirectory(target) {
		dumpProject(target, cfg)
		return
	}

	var files []string
	filepath.Walk(target, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	for _, f := range files {
		dumpProject(f, cfg)
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "gmxdump",
		Short: "A GameMaker legacy executable decoder",
		Long:  "gmxdump extracts the embedded project data from GameMaker legacy executables",
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("You are using version 0.1.0")
		},
	}

	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Dumps a project's resources",
		Long:  "Decodes a GameMaker legacy executable (or a directory of them) and dumps the requested resource kinds as JSON",
		Args:  cobra.MinimumNArgs(1),
		Run:   dump,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a TOML config file")
	dumpCmd.Flags().BoolVar(&wantSettings, "settings", false, "dump settings")
	dumpCmd.Flags().BoolVar(&wantHelp, "help-page", false, "dump the help page")
	dumpCmd.Flags().BoolVar(&wantSounds, "sounds", false, "dump sounds")
	dumpCmd.Flags().BoolVar(&wantSprites, "sprites", false, "dump sprites")
	dumpCmd.Flags().BoolVar(&wantRooms, "rooms", false, "dump rooms")
	dumpCmd.Flags().BoolVar(&wantAnomalies, "anomalies", false, "dump recorded anomalies")
	dumpCmd.Flags().BoolVar(&wantAll, "all", false, "dump everything")

	rootCmd.AddCommand(versionCmd, dumpCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
