/* Copyright (c) 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file in the current directory for license terms
 */
package s3cache

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/gregjones/httpcache/test"
)

// fakeS3 is an in-memory stand-in for a single bucket.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string][]byte)}
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput,
	optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {

	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[*in.Key]
	if !ok {
		return nil, &smithy.GenericAPIError{Code: "NoSuchKey", Message: "missing"}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput,
	optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {

	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[*in.Key] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput,
	optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {

	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, *in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) HeadBucket(ctx context.Context, in *s3.HeadBucketInput,
	optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {

	return &s3.HeadBucketOutput{}, nil
}

func TestS3CacheFake(t *testing.T) {
	for _, gz := range []bool{false, true} {
		t.Run(fmt.Sprintf("gzip=%v", gz), func(t *testing.T) {
			fake := newFakeS3()
			cache := New(context.Background(), fake, "bucket", "webcache", gz)
			if err := cache.Init(); err != nil {
				t.Fatalf("Init: %v", err)
			}

			test.Cache(t, cache)

			cache.Set("https://example.com/results", []byte("cached"))
			for key := range fake.objects {
				if !strings.HasPrefix(key, "webcache/") {
					t.Errorf("object key %q is missing the prefix", key)
				}
				if gz != strings.HasSuffix(key, ".gz") {
					t.Errorf("object key %q has wrong suffix for gzip=%v", key, gz)
				}
			}
		})
	}
}

func TestS3Cache(t *testing.T) {
	bucket := os.Getenv("VTTC_CACHE_BUCKET")
	if bucket == "" {
		t.Skip("Skipping test because VTTC_CACHE_BUCKET is not set")
	}
	ctx := context.Background()
	awsCfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		t.Skip(fmt.Sprintf("Skipping test due to lack of AWS config: %v", err))
	}
	cache := New(ctx, s3.NewFromConfig(awsCfg), bucket, "s3cache-test", true)
	if err := cache.Init(); err != nil {
		t.Skip(fmt.Sprintf("Skipping test due to lack of access to %v: %v",
			bucket, err))
	}

	test.Cache(t, cache)
}
