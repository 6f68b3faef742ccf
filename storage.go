// govdir/storage.go
package main

import (
	"log/slog"
	"os"

	"govdir/config"
	"govdir/models"
	"govdir/utils"
)

// newBackupStore picks the backup destination: S3 when configured and
// reachable, local disk otherwise.
func newBackupStore(settings config.Settings, logger *slog.Logger) models.BackupStore {
	if !settings.S3.Enabled {
		return utils.LocalBackups{}
	}
	s3, err := utils.NewS3Backups(settings.S3.Endpoint, settings.S3.AccessKey,
		settings.S3.SecretKey, settings.S3.Bucket, settings.S3.Region, settings.S3.UseSSL)
	if err != nil {
		logger.Error("s3 backup store unavailable", "error", err)
		os.Exit(1)
	}
	logger.Info("backups will be uploaded to s3", "bucket", settings.S3.Bucket)
	return s3
}
