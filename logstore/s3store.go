/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package logstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	objectSuffix = ".json"
	// maxParallelGets bounds concurrent GetObject calls while listing
	maxParallelGets = 8
)

// S3API is the subset of *s3.Client used by S3Store.
type S3API interface {
	s3.ListObjectsV2APIClient
	GetObject(ctx context.Context, in *s3.GetObjectInput,
		optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput,
		optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store keeps each record as a JSON object named <prefix>/<id>.json.
type S3Store struct {
	client S3API
	bucket string
	prefix string
	now    func() time.Time
}

func NewS3Store(client S3API, bucket string, prefix string) *S3Store {
	return &S3Store{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		now:    time.Now,
	}
}

// listPrefix is the key prefix shared by every record; an empty store prefix
// keeps records at the bucket root.
func (s *S3Store) listPrefix() string {
	if s.prefix == "" {
		return ""
	}
	return s.prefix + "/"
}

func (s *S3Store) objectKey(id string) string {
	return path.Join(s.prefix, id+objectSuffix)
}

func (s *S3Store) Save(ctx context.Context, rec *Record) (string, error) {
	if err := rec.validate(); err != nil {
		return "", err
	}

	saved := *rec
	saved.ID = uuid.NewString()
	saved.CreatedAt = s.now().UTC()

	body, err := json.Marshal(&saved)
	if err != nil {
		return "", fmt.Errorf("failed to marshal log: %w", err)
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.objectKey(saved.ID)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to save log to %v: %w", s.bucket, err)
	}

	*rec = saved
	return saved.ID, nil
}

func (s *S3Store) List(ctx context.Context) ([]Record, error) {
	keys, err := s.listKeys(ctx)
	if err != nil {
		return nil, err
	}

	recs := make([]Record, len(keys))
	found := make([]bool, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelGets)
	for idx, key := range keys {
		g.Go(func() error {
			rec, err := s.get(gctx, key)
			if errors.Is(err, ErrNotFound) {
				// deleted between list and get
				log.Printf("logstore.list: %v vanished", key)
				return nil
			}
			if err != nil {
				return err
			}
			recs[idx] = *rec
			found[idx] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	ret := make([]Record, 0, len(recs))
	for idx := range recs {
		if found[idx] {
			ret = append(ret, recs[idx])
		}
	}
	sortNewestFirst(ret)

	return ret, nil
}

func (s *S3Store) listKeys(ctx context.Context) ([]string, error) {
	var keys []string
	p := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.listPrefix()),
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list logs in %v: %w", s.bucket, err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if strings.HasSuffix(key, objectSuffix) {
				keys = append(keys, key)
			}
		}
	}

	return keys, nil
}

func (s *S3Store) get(ctx context.Context, key string) (*Record, error) {
	resp, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && (apiErr.ErrorCode() == "NoSuchKey" ||
			apiErr.ErrorCode() == "NotFound") {
			return nil, fmt.Errorf("%w: %v", ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to get %v: %w", key, err)
	}
	defer resp.Body.Close()

	var rec Record
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, fmt.Errorf("failed to decode %v: %w", key, err)
	}

	return &rec, nil
}
