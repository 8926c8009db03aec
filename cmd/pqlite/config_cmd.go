package main

import (
	"fmt"
)

// runConfigCmd prints the effective configuration after the config file and
// environment variables are applied.
func runConfigCmd(args []string, env *Environment) error {
	flags, err := parseConfigFlags(args, env)
	if err != nil {
		return flagError(err)
	}

	cfg, err := loadConfig(flags.config, loadEnvConfig())
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}

	if cfg.Path != "" && !flags.quiet {
		fmt.Fprintf(env.Stdout, "# %s\n", cfg.Path)
	}
	_, err = env.Stdout.Write(data)
	return err
}
