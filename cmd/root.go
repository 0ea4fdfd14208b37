package cmd

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "fvm2d",
	Short: "2D cell-centered finite-volume solver for the compressible Euler/Navier-Stokes equations",
	Long: `fvm2d assembles the spatial residual and Jacobian for a 2D cell-centered
finite-volume discretization of the compressible Euler and Navier-Stokes
equations on unstructured hybrid meshes, and drives an explicit pseudo-time
march to a steady state.`,
}

// Execute runs the root command, exiting the process on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "settings", "", "viper settings file (default is $HOME/.fvm2d.yaml)")
}

// initConfig loads the --settings file (or a .fvm2d dotfile in the user's
// home directory) and the environment into viper, separate from the per-run
// config.Config YAML that the run command reads explicitly via its --config
// flag. No command flag is bound to viper, so the loaded values do not
// change any flag default.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".fvm2d")
	}
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}
