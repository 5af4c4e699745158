package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zipstore"
)

const description = "zipstore is a tool for storing files in a ZIP archive built in memory."

var (
	version = "devel"

	cfgFile string

	cmdRoot = &cobra.Command{
		Use:   "zipstore [flags] ARCHIVE FILE...",
		Short: description,
		Long: description + `

Files are stored uncompressed. Directories are walked and their regular
files are added. Use - as ARCHIVE to write the archive to stdout.`,
		Args:              validateArgs,
		PersistentPreRunE: preRun,
		RunE:              runStore,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	cmdVersion = &cobra.Command{
		Use:   "version",
		Short: "Print the version number and exit.",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("zipstore version %s\n", version)
		},
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	cmdRoot.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.zipstore.yaml)")
	cmdRoot.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")
	cmdRoot.Flags().Int("concurrency", runtime.GOMAXPROCS(0), "allow up to n checksum routines")
	cmdRoot.Flags().Bool("clamp-timestamps", false, "clamp modification times outside 1980-2107 instead of failing")
	cmdRoot.Flags().Bool("utf8-names", false, "mark non ASCII entry names as UTF-8")

	for _, name := range []string{"concurrency", "clamp-timestamps", "utf8-names"} {
		viper.BindPFlag(name, cmdRoot.Flags().Lookup(name))
	}
	viper.BindPFlag("log-level", cmdRoot.PersistentFlags().Lookup("log-level"))

	cmdRoot.AddCommand(cmdVersion)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".zipstore")
	}

	viper.SetEnvPrefix("zipstore")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		log.WithField("config", viper.ConfigFileUsed()).Debug("using config file")
	} else if cfgFile != "" {
		log.WithError(err).Fatalf("could not read config file %s", cfgFile)
	}
}

func preRun(cmd *cobra.Command, args []string) error {
	log.SetOutput(os.Stderr)

	level, err := log.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		return errors.Wrap(err, "ERROR: invalid log level")
	}
	log.SetLevel(level)

	return nil
}

func validateArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		return errors.New("zipstore error: invalid usage")
	}

	return nil
}

func runStore(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	cli := zipstore.StoreCLI{
		ArchivePath:     args[0],
		Files:           args[1:],
		Concurrency:     viper.GetInt("concurrency"),
		ClampTimestamps: viper.GetBool("clamp-timestamps"),
		UTF8Names:       viper.GetBool("utf8-names"),
		Stdout:          cmd.OutOrStdout(),
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	archive, err := cli.Archive(ctx)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"archive": filepath.Clean(cli.ArchivePath),
		"paths":   len(cli.Files),
		"bytes":   archive.Len(),
	}).Info("stored archive")

	return nil
}

func main() {
	if err := cmdRoot.ExecuteContext(context.Background()); err != nil {
		log.Fatal(err)
	}
}
