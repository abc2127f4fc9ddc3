package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pennassurancesoftware/tutum-go/pkg/config"
	"github.com/pennassurancesoftware/tutum-go/pkg/logger"
	"github.com/pennassurancesoftware/tutum-go/pkg/tutum"
)

var (
	cfgFile      string
	apiToken     string
	outputFormat string
	verboseMode  bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tutum",
	Short: "Tutum is a client for the Tutum node and cluster API",
	Long: `Tutum manages compute nodes and node clusters across cloud
providers through the Tutum API: browse the provider/region/node-type
catalog, create and deploy node clusters, and manage individual nodes.`,
	SilenceUsage: true,
}

// newAPIClient builds the client the subcommands use. Tests swap this
// out for a mock.
var newAPIClient = func() (tutum.Tutum, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if apiToken != "" {
		cfg.Token = apiToken
	}
	opts := []tutum.Option{
		tutum.WithBaseURL(cfg.BaseURL),
		tutum.WithVersion(cfg.Version),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, tutum.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}))
	}
	if cfg.Retry > 0 {
		opts = append(opts, tutum.WithRetry(cfg.Retry))
	}
	return tutum.New(cfg.Token, opts...)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default is $HOME/.tutum.yaml)")
	rootCmd.PersistentFlags().
		StringVar(&apiToken, "token", "", "API auth token (overrides config and TUTUM_TOKEN)")
	rootCmd.PersistentFlags().
		StringVarP(&outputFormat, "output", "o", "table", "output format: table, json or yaml")
	rootCmd.PersistentFlags().BoolVar(&verboseMode, "verbose", false, "Enable verbose output")

	rootCmd.AddCommand(getActionCmd())
	rootCmd.AddCommand(getProviderCmd())
	rootCmd.AddCommand(getRegionCmd())
	rootCmd.AddCommand(getNodeTypeCmd())
	rootCmd.AddCommand(getNodeClusterCmd())
	rootCmd.AddCommand(getNodeCmd())
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".tutum")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verboseMode {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	logger.InitLoggerOutputs()
	if verboseMode {
		logger.GlobalLogLevel = "debug"
		logger.GlobalEnableConsoleLogger = true
	}
}
