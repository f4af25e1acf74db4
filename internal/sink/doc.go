// Package sink delivers rendered subtitle content to its destinations.
//
// FileSink writes into the configured output directory. S3Sink uploads to an
// S3 bucket, optionally creating the bucket first.
package sink
