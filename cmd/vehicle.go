package cmd

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/cod3gen/zeekr-homeassistant/core/entity"
	"github.com/cod3gen/zeekr-homeassistant/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// vehicleCmd polls the vehicles once and prints their status
var vehicleCmd = &cobra.Command{
	Use:   "vehicle [vin]",
	Short: "Query vehicle status",
	Args:  cobra.MaximumNArgs(1),
	Run:   runVehicle,
}

func init() {
	rootCmd.AddCommand(vehicleCmd)
	vehicleCmd.Flags().Bool("yaml", false, "Print the raw status tree as yaml")
}

func runVehicle(cmd *cobra.Command, args []string) {
	util.LogLevel(viper.GetString("log"), viper.GetStringMapString("levels"))

	conf, err := loadConfigFile(cfgFile)
	if err != nil {
		log.FATAL.Fatal(err)
	}

	util.LogLevel(conf.Log, conf.Levels)

	client, err := configureClient(conf)
	if err != nil {
		log.FATAL.Fatal(err)
	}

	site := configureCoordinator(conf, client, configureDatabase(conf))
	defer site.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	trees, err := site.Refresh(ctx)
	if err != nil {
		log.FATAL.Fatal(err)
	}

	asYaml, _ := cmd.Flags().GetBool("yaml")
	d := &dumper{w: os.Stdout, yaml: asYaml}

	for _, vin := range site.Store().VINs() {
		if len(args) == 1 && !strings.EqualFold(args[0], vin) {
			continue
		}

		d.Header(vin)

		if err := d.Tree(trees[vin]); err != nil {
			log.ERROR.Println(err)
		}

		if !asYaml {
			d.Entities(entity.Vehicle(site, vin))
		}
	}
}
