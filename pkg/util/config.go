package util

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// ReadConfig. read config file (default ./data/config.yaml), env variables override file values
func ReadConfig(configFile string) error {
	if configFile == "" {
		viper.SetConfigName("config")
		viper.AddConfigPath("./data/")
	} else {
		viper.SetConfigName(strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile)))
		viper.AddConfigPath(filepath.Dir(configFile))
	}
	viper.AutomaticEnv()

	setDefaults()

	err := viper.ReadInConfig()
	if err != nil {
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("region.center_lat", 18.6298)
	viper.SetDefault("region.center_lon", 73.7997)
	viper.SetDefault("region.radius_m", 5000.0)
	viper.SetDefault("region.network_type", "drive")

	viper.SetDefault("graph.dir", "./data/")
	viper.SetDefault("graph.osm_file", "./data/region.osm.pbf")
	viper.SetDefault("graph.cache_size", 4)

	viper.SetDefault("traffic.max_intensity", 10.0)
	viper.SetDefault("traffic.default_intensity", 3.0)

	viper.SetDefault("routing.workers", 1)
	viper.SetDefault("routing.max_settled_nodes", 0)
	viper.SetDefault("routing.landmarks", 8)
	viper.SetDefault("routing.left_hand_traffic", true)
}

type DestinationConfig struct {
	Name string  `mapstructure:"name" validate:"required"`
	Lat  float64 `mapstructure:"lat" validate:"latitude"`
	Lon  float64 `mapstructure:"lon" validate:"longitude"`
}

type destinationsConfig struct {
	Destinations []DestinationConfig `validate:"required,min=1,unique=Name,dive"`
}

// ReadDestinations. ordered candidate destinations under the "destinations" key.
// names must be unique and coordinates valid.
func ReadDestinations() ([]DestinationConfig, error) {
	var dests []DestinationConfig
	if err := viper.UnmarshalKey("destinations", &dests); err != nil {
		return nil, fmt.Errorf("failed to decode destinations: %w", err)
	}

	if err := validator.New().Struct(destinationsConfig{Destinations: dests}); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, e := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed on %s", e.Namespace(), e.Tag()))
			}
			return nil, fmt.Errorf("invalid destinations: %s", strings.Join(msgs, "; "))
		}
		return nil, fmt.Errorf("invalid destinations: %w", err)
	}
	return dests, nil
}
