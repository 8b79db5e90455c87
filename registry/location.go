package registry

import (
	"context"
	"fmt"

	"github.com/viant/afs"
)

// LoadLocation reads a definition file through the afs abstract-storage
// service and loads it. The location may be a local path or any URL
// scheme afs understands (file://, s3://, gs://, http:// ...), so unit
// vocabularies can ship next to the binary or live in object storage.
//
// All-or-nothing semantics are inherited from Load.
func (r *Registry) LoadLocation(ctx context.Context, location string) error {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, location)
	if err != nil {
		return fmt.Errorf("registry: read definitions %s: %w", location, err)
	}

	return r.Load(string(data))
}
