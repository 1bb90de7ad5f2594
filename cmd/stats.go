package cmd

import (
	"fmt"
	"os"

	"github.com/benbjohnson/clock"
	"github.com/cod3gen/zeekr-homeassistant/core/stats"
	"github.com/cod3gen/zeekr-homeassistant/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// statsCmd shows the persisted request statistics
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show API request statistics",
	Run:   runStats,
}

var statsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset today's counters",
	Run:   runStatsReset,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.AddCommand(statsResetCmd)
}

func loadStats() *stats.Stats {
	util.LogLevel(viper.GetString("log"), viper.GetStringMapString("levels"))

	conf, err := loadConfigFile(cfgFile)
	if err != nil {
		log.FATAL.Fatal(err)
	}

	util.LogLevel(conf.Log, conf.Levels)

	db := configureDatabase(conf)
	if db == nil {
		log.FATAL.Fatal("database not available")
	}

	s := configureStats(db, clock.New())
	s.Load()

	return s
}

func runStats(cmd *cobra.Command, args []string) {
	d := &dumper{w: os.Stdout}
	d.Stats(loadStats().Counters())
}

func runStatsReset(cmd *cobra.Command, args []string) {
	s := loadStats()
	s.ResetToday()

	fmt.Println("today's counters reset")
}
