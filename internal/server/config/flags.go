package config

import (
	"flag"
	"time"

	"github.com/dmitrijs2005/photodrop/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-t int      access token validity, minutes
//	-r int      refresh token validity, minutes
//	-k string   storage backend (s3, minio, gcs)
//	-u string   storage access key
//	-p string   storage secret key
//	-b string   bucket name
//	-g string   region
//	-e string   storage endpoint (e.g., "http://127.0.0.1:9000/")
//	-x int      presign TTL, minutes
//
// args is filtered with flagx.FilterArgs first, so flags meant for other
// components (such as -c) do not break parsing.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-s", "-t", "-r", "-k", "-u", "-p", "-b", "-g", "-e", "-x"})

	fs := flag.NewFlagSet("photodrop-server", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTTL := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	refreshTTL := fs.Int("r", int(config.RefreshTokenValidityDuration.Minutes()), "refresh token validity (in minutes)")

	fs.StringVar(&config.StorageBackend, "k", config.StorageBackend, "storage backend: s3, minio or gcs")
	fs.StringVar(&config.StorageAccessKey, "u", config.StorageAccessKey, "storage access key")
	fs.StringVar(&config.StorageSecretKey, "p", config.StorageSecretKey, "storage secret key")
	fs.StringVar(&config.StorageBucket, "b", config.StorageBucket, "bucket")
	fs.StringVar(&config.StorageRegion, "g", config.StorageRegion, "region")
	fs.StringVar(&config.StorageEndpoint, "e", config.StorageEndpoint, "storage endpoint")

	presignTTL := fs.Int("x", int(config.PresignTTL.Minutes()), "upload URL validity (in minutes)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTTL) * time.Minute
	config.RefreshTokenValidityDuration = time.Duration(*refreshTTL) * time.Minute
	config.PresignTTL = time.Duration(*presignTTL) * time.Minute
	return nil
}
