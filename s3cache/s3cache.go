/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright (c) 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file in the current directory for license terms
 *
 * Package s3cache provides an implementation of httpcache.Cache that stores and
 * retrieves data using Amazon S3. It is based on the original
 * github.com/sourcegraph/s3cache but updated to use the more modern
 * aws-sdk-go-v2 and golang standard library functions
 */
package s3cache

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// API is the subset of *s3.Client the cache uses.
type API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput,
		optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput,
		optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput,
		optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput,
		optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// Cache objects store and retrieve data using Amazon S3.
type Cache struct {
	client API

	// bucketName is the name of the S3 bucket in Amazon S3. Example: "mybucket".
	bucketName string

	// prefix is prepended to every object key so the cache can share a
	// bucket with other data.
	prefix string

	// gzip indicates whether cache entries should be gzipped in Set and
	// gunzipped in Get. If true, cache entry keys will have the suffix ".gz"
	// appended.
	gzip bool

	// The context to specify when initiating s3 requests
	ctx context.Context
}

// Get returns the cached response for key, if any.
func (c *Cache) Get(key string) ([]byte, bool) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(c.cacheKeyToObjectKey(key)),
	}

	resp, err := c.client.GetObject(c.ctx, input)
	if err != nil {
		var apiErr smithy.APIError
		// no such key just indicates a cache miss
		if !(errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey") {
			log.Printf("s3cache.get: failed to get object %v%v: %v", *input.Bucket,
				*input.Key, err)
		}
		return []byte{}, false
	}
	defer resp.Body.Close()

	rdr := resp.Body
	if c.gzip {
		rdr, err = gzip.NewReader(rdr)
		if err != nil {
			log.Printf("s3cache.get: failed to open compressed object %v%v: %v",
				*input.Bucket, *input.Key, err)
			return nil, false
		}

		defer rdr.Close()
	}
	data, err := io.ReadAll(rdr)
	if err != nil {
		log.Printf("s3cache.get: failed to read object %v%v: %v",
			*input.Bucket, *input.Key, err)
	}

	return data, err == nil
}

// Set stores the provided data in the cache under the given key.
func (c *Cache) Set(key string, data []byte) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(c.cacheKeyToObjectKey(key)),
		Body:   bytes.NewReader(data),
	}

	if c.gzip {
		var buf bytes.Buffer
		gw := gzip.NewWriter(&buf)
		if _, err := gw.Write(data); err != nil {
			log.Printf("s3cache.set: failed to gzip data for %v%v: %v",
				*input.Bucket, *input.Key, err)
			return
		}
		if err := gw.Close(); err != nil {
			log.Printf("s3cache.set: failed to close gzip writer for %v%v: %v",
				*input.Bucket, *input.Key, err)
			return
		}
		input.Body = &buf
		input.ContentEncoding = aws.String("gzip")
	}

	_, err := c.client.PutObject(c.ctx, input)
	if err != nil {
		log.Printf("s3cache.set: put failed for %v%v: %v", *input.Bucket,
			*input.Key, err)
	}
}

// Delete removes key from the cache.
func (c *Cache) Delete(key string) {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucketName),
		Key:    aws.String(c.cacheKeyToObjectKey(key)),
	}

	_, err := c.client.DeleteObject(c.ctx, input)
	if err != nil {
		log.Printf("s3cache.delete: delete failed: %v", err)
	}
}

func (c *Cache) cacheKeyToObjectKey(key string) string {
	h := md5.New()
	io.WriteString(h, key)
	objKey := fmt.Sprintf("%v/%v", c.prefix, hex.EncodeToString(h.Sum(nil)))
	if c.gzip {
		objKey += ".gz"
	}

	return objKey
}

// New returns a new Cache storing objects under prefix in the given bucket,
// optionally gzip compressed. Callers should invoke Init() on the returned
// Cache before use.
func New(ctxIn context.Context, clientIn API, bucketNameIn string,
	prefixIn string, gzipIn bool) *Cache {

	return &Cache{
		ctx:        ctxIn,
		client:     clientIn,
		bucketName: bucketNameIn,
		prefix:     prefixIn,
		gzip:       gzipIn,
	}
}

// Init verifies the bucket exists and is accessible.
func (c *Cache) Init() error {
	if _, err := c.client.HeadBucket(c.ctx, &s3.HeadBucketInput{
		Bucket: aws.String(c.bucketName),
	}); err != nil {
		return fmt.Errorf("s3cache.init: head bucket failed for %s: %w",
			c.bucketName, err)
	}

	return nil
}
