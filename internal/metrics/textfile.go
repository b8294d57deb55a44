package metrics

import (
	"os"
	"path/filepath"

	"github.com/osforge/osforge/internal/paths"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Writes every metric of the default registry to path in the text format
// read by the node_exporter textfile collector. The parent directory is
// created if needed.
func WriteTextfile(path string) error {
	return WriteTextfileFrom(prometheus.DefaultGatherer, path)
}

// Writes the metrics gathered by g to path.
func WriteTextfileFrom(g prometheus.Gatherer, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), paths.DefaultDirMode); err != nil {
		return errors.Wrap(err, "metrics textfile")
	}
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return errors.Wrap(err, "metrics textfile")
	}
	return nil
}
