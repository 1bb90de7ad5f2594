package cmd

import (
	"context"
	"errors"
	"net/http"
	_ "net/http/pprof" // pprof handler
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avast/retry-go/v3"
	"github.com/cod3gen/zeekr-homeassistant/core/entity"
	"github.com/cod3gen/zeekr-homeassistant/server"
	"github.com/cod3gen/zeekr-homeassistant/server/public"
	"github.com/cod3gen/zeekr-homeassistant/util"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

// runCmd represents the bridge service
var runCmd = &cobra.Command{
	Use:    "run",
	Short:  "Run the bridge",
	Hidden: true,
	Run:    runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.Run = runRun

	rootCmd.PersistentFlags().StringP(
		"uri", "u",
		"0.0.0.0:7080",
		"Listen address",
	)
	bind(rootCmd, "uri")

	rootCmd.PersistentFlags().DurationP(
		"interval", "i",
		5*time.Minute,
		"Poll interval",
	)
	bind(rootCmd, "interval")

	rootCmd.PersistentFlags().Bool(
		"metrics",
		false,
		"Expose metrics",
	)
	bind(rootCmd, "metrics")

	rootCmd.PersistentFlags().Bool(
		"profile",
		false,
		"Expose pprof profiles",
	)
	bind(rootCmd, "profile")
}

func runRun(cmd *cobra.Command, args []string) {
	util.LogLevel(viper.GetString("log"), viper.GetStringMapString("levels"))
	log.INFO.Printf("zeekr %s (%s)", server.Version, server.Commit)

	// load config and re-configure logging after reading config file
	conf, err := loadConfigFile(cfgFile)
	if err != nil {
		log.FATAL.Fatal(err)
	}

	util.LogLevel(conf.Log, conf.Levels)

	if _, err := public.SetListener(conf.URI); err != nil {
		log.WARN.Printf("public address: %v", err)
	}
	log.INFO.Println("listening at", public.URL("http", ""))

	client, err := configureClient(conf)
	if err != nil {
		log.FATAL.Fatal(err)
	}

	site := configureCoordinator(conf, client, configureDatabase(conf))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// entities are created for the vehicles found by the first poll
	if err := retry.Do(func() error {
		_, err := site.Refresh(ctx)
		return err
	},
		retry.Context(ctx),
		retry.Attempts(5),
		retry.Delay(10*time.Second),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.WARN.Printf("vehicle discovery failed (attempt %d): %v", n+1, err)
		}),
	); err != nil {
		log.FATAL.Fatal(err)
	}

	registry := entity.Setup(site)

	// start broadcasting values
	tee := &util.Tee{}

	// value cache
	cache := util.NewCache()
	go cache.Run(tee.Attach())

	// setup mqtt publisher
	if conf.Mqtt.Broker != "" {
		publisher, err := server.NewMQTT(conf.Mqtt)
		if err != nil {
			log.FATAL.Fatal(err)
		}
		defer publisher.Close()

		go publisher.Run(tee.Attach())

		if err := publisher.Listen(registry); err != nil {
			log.ERROR.Printf("mqtt: %v", err)
		}

		if err := site.Subscribe(func(vin string) {
			if tree, ok := site.Store().Get(vin); ok {
				publisher.PublishStatus(vin, tree)
			}
		}); err != nil {
			log.FATAL.Fatal(err)
		}
	}

	// create webserver
	socketHub := server.NewSocketHub()
	httpd := server.NewHTTPd(conf.URI, site, socketHub, cache)
	httpd.RegisterEntities(registry)

	if journal := site.Journal(); journal != nil {
		httpd.RegisterJournal(journal)
	}

	// metrics
	if conf.Metrics {
		prometheus.MustRegister(server.NewCollector(site))
		httpd.Router().Handle("/metrics", promhttp.Handler())
	}

	// pprof
	if conf.Profile {
		httpd.Router().PathPrefix("/debug/").Handler(http.DefaultServeMux)
	}

	// publish to UI
	go socketHub.Run(tee.Attach(), cache)

	// setup values channel
	valueChan := make(chan util.Param)
	go tee.Run(valueChan)

	publish := func(vin string) {
		registry.Publish(vin, valueChan)
		valueChan <- util.Param{Key: "stats", Val: site.Stats().Counters()}
	}

	if err := site.Subscribe(publish); err != nil {
		log.FATAL.Fatal(err)
	}

	site.WriteState("")
	for _, vin := range site.Store().VINs() {
		site.WriteState(vin)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		site.Run(ctx)
		return nil
	})

	g.Go(func() error {
		if err := httpd.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		site.Stop()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return httpd.Shutdown(ctx)
	})

	if err := g.Wait(); err != nil {
		log.FATAL.Fatal(err)
	}
}
