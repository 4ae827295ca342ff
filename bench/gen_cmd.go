package bench

import (
	"fmt"

	"github.com/spf13/cobra"
)

// GenCommand returns the command that writes a synthetic dataset for RunCommand.
func GenCommand() *cobra.Command {
	var (
		profile   string
		shards    int
		records   int
		dupes     float64
		order     string
		seed      uint64
		logConfig LogConfig
	)
	cmd := &cobra.Command{
		Use:   "gen-cities [out-dir]",
		Short: "Generate city record datasets for csz-bench",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var params CityParams
			switch profile {
			case "small":
				params = SmallCities(seed)
			case "large":
				params = LargeCities(seed)
			case "sorted":
				params = SortedCities(seed)
			default:
				return fmt.Errorf("unknown generator profile: %s", profile)
			}
			flags := cmd.Flags()
			if flags.Changed("shards") {
				params.Shards = shards
			}
			if flags.Changed("records") {
				params.RecordsPerShard = records
			}
			if flags.Changed("duplicates") {
				params.DuplicateFraction = dupes
			}
			if flags.Changed("order") {
				o, err := ParseOrder(order)
				if err != nil {
					return err
				}
				params.Order = o
			}

			log, closer, err := NewLogger(logConfig)
			if err != nil {
				return err
			}
			defer closer.Close()

			return GenerateDataset(params, args[0], log)
		},
	}
	cmd.Flags().StringVar(&profile, "profile", "small", "data generation profile to use (small|large|sorted)")
	cmd.Flags().IntVar(&shards, "shards", 0, "override the profile's number of shard files")
	cmd.Flags().IntVar(&records, "records", 0, "override the profile's records per shard")
	cmd.Flags().Float64Var(&dupes, "duplicates", 0, "override the profile's fraction of records reusing an earlier city")
	cmd.Flags().StringVar(&order, "order", "", "override the profile's record order (random|sorted|reverse)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed")
	cmd.Flags().StringVar(&logConfig.Type, "log-type", "console", "log format (console|json)")
	cmd.Flags().StringVar(&logConfig.Level, "log-level", "info", "log level")
	return cmd
}
