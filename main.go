/*
 * POXIM - Main program.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	getopt "github.com/pborman/getopt/v2"
	"github.com/pkg/profile"
	reader "github.com/rcornwell/poxim/command/reader"
	config "github.com/rcornwell/poxim/config/configparser"
	core "github.com/rcornwell/poxim/emu/core"
	"github.com/rcornwell/poxim/util/debug"
	logger "github.com/rcornwell/poxim/util/logger"

	_ "github.com/rcornwell/poxim/config/debugconfig"
)

const defaultConfig = "poxim.cfg"

func main() {
	optConfig := getopt.StringLong("config", 'c', defaultConfig, "Configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optDebug := getopt.BoolLong("debug", 'd', "Log debug to console")
	optInteractive := getopt.BoolLong("interactive", 'i', "Run monitor console")
	optProfile := getopt.StringLong("profile", 'p', "", "Write CPU profile to directory")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.SetParameters("input output")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var logFile io.Writer
	if *optLogFile != "" {
		file, err := os.Create(*optLogFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to create log file: "+err.Error())
			os.Exit(1)
		}
		logFile = file
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	Logger := slog.New(logger.NewHandler(logFile, &slog.HandlerOptions{Level: programLevel, AddSource: false}, *optDebug))
	slog.SetDefault(Logger)

	args := getopt.Args()
	if len(args) != 2 {
		getopt.Usage()
		os.Exit(1)
	}

	stopProfile := func() {}
	if *optProfile != "" {
		stopProfile = profile.Start(profile.CPUProfile, profile.ProfilePath(*optProfile), profile.Quiet).Stop
	}

	err := run(*optConfig, getopt.IsSet("config"), args[0], args[1], *optInteractive)
	stopProfile()
	debug.Close()
	if err != nil {
		Logger.Error(err.Error())
		os.Exit(1)
	}
}

// Load configuration and program, then simulate.
func run(configFile string, explicit bool, inputName, outputName string, interactive bool) error {
	slog.Info("POXIM Started")
	if err := loadConfig(configFile, explicit); err != nil {
		return err
	}

	input, err := os.Open(inputName)
	if err != nil {
		return fmt.Errorf("unable to open input: %w", err)
	}
	defer input.Close()

	output, err := os.Create(outputName)
	if err != nil {
		return fmt.Errorf("unable to create output: %w", err)
	}
	defer output.Close()
	buffer := bufio.NewWriter(output)

	sim := core.New(buffer)
	if err := sim.Load(input); err != nil {
		return fmt.Errorf("unable to load %s: %w", inputName, err)
	}

	if interactive {
		sim.Start()
		reader.ConsoleReader(sim)
		err = sim.Finish()
	} else {
		err = sim.Run()
	}
	if flushErr := buffer.Flush(); err == nil {
		err = flushErr
	}
	slog.Info(fmt.Sprintf("POXIM Stopped after %d cycles", sim.Cycles()))
	return err
}

// A missing default configuration file is not an error.
func loadConfig(configFile string, explicit bool) error {
	_, err := os.Stat(configFile)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		slog.Debug("No configuration file " + configFile)
		return nil
	}
	if err != nil {
		return fmt.Errorf("configuration file %s can't be found", configFile)
	}
	return config.LoadConfigFile(configFile)
}
