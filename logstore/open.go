/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package logstore

import (
	"context"
	"log"

	"github.com/mikeb26/vttc-ratings/internal"
)

// Open returns an S3Store when cfg names a bucket and a MemStore otherwise.
func Open(ctx context.Context, cfg internal.LogStoreConfig) (Store, error) {
	if cfg.Bucket == "" {
		log.Printf("logstore.open: no bucket configured; logs are kept in memory only")
		return NewMemStore(), nil
	}

	client, err := internal.NewS3Client(ctx, cfg.Region)
	if err != nil {
		return nil, err
	}

	return NewS3Store(client, cfg.Bucket, cfg.Prefix), nil
}
