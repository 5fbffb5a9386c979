package config

import (
	"os"

	"github.com/xtraders/tradelog/internal/errors"
)

const configTemplate = `# XTraders trade log configuration

[storage]
# SQLite database holding the ledger and the daily report archive.
# Use ":memory:" to keep nothing between runs.
# path = "~/.config/xtraders/xtraders.db"

[ingest]
# Files read in parallel by "analyze" (0 = unlimited)
max_concurrent_reads = 4

[logging]
# debug, info, warn, error
level = "info"
# Log to stderr
console = true
# Log to a rotating file
file = true
# file_path = "~/.config/xtraders/logs/xtraders.log"
max_size = 20
max_backups = 5
max_age = 30

[ui]
# Enable colored output
color_enabled = true
`

func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return errors.Wrap(err, "creating config directory")
	}

	path := FilePath(configDir)
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return errors.Wrap(err, "writing config template")
	}

	return nil
}
