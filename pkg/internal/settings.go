package pkg

import (
	"time"

	"github.com/spf13/viper"
)

// SetDefaultSettings registers the fallback values used when settings.toml leaves a key out.
func SetDefaultSettings() {
	viper.SetDefault("bind", "0.0.0.0:8444")
	viper.SetDefault("debug.database", false)
	viper.SetDefault("debug.print_routes", false)
	viper.SetDefault("debug.stack_trace", false)
	viper.SetDefault("database.prefix", "circle_")
	viper.SetDefault("security.session_ttl", 72*time.Hour)
	viper.SetDefault("security.admin_accounts", []int{})
	viper.SetDefault("storage.driver", "local")
	viper.SetDefault("storage.local.root", "uploads")
	viper.SetDefault("storage.s3.region", "us-east-1")
	viper.SetDefault("cleanup.schedule", "@every 60m")
}
