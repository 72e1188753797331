package storage

import (
	"context"
	"fmt"

	"github.com/shashiranjanraj/shopfront/config"
	"github.com/shashiranjanraj/shopfront/pkg/logger"
)

// Manager holds the configured disks and the default one.
type Manager struct {
	disks map[string]Disk
	def   string
	local *LocalDisk
}

// NewManager always boots the local disk and adds S3 when a bucket is
// configured. An S3 failure disables that disk rather than the process.
func NewManager(ctx context.Context) (*Manager, error) {
	local, err := NewLocalDisk(config.StorageLocalRoot(), config.StorageURL())
	if err != nil {
		return nil, err
	}

	m := &Manager{
		disks: map[string]Disk{"local": local},
		def:   config.StorageDefault(),
		local: local,
	}

	if bucket := config.StorageS3Bucket(); bucket != "" {
		d, err := NewS3Disk(ctx, S3Config{
			Bucket:   bucket,
			Region:   config.StorageS3Region(),
			Key:      config.StorageS3Key(),
			Secret:   config.StorageS3Secret(),
			Endpoint: config.StorageS3Endpoint(),
			URL:      config.StorageS3URL(),
		})
		if err != nil {
			logger.Warn("s3 disk disabled", "error", err.Error())
		} else {
			m.disks["s3"] = d
		}
	}

	if _, ok := m.disks[m.def]; !ok {
		logger.Warn("default disk not configured, using local", "disk", m.def)
		m.def = "local"
	}
	return m, nil
}

// NewManagerWith builds a Manager from explicit disks; the first is the
// default.
func NewManagerWith(local *LocalDisk, extra ...Disk) *Manager {
	m := &Manager{disks: map[string]Disk{}, local: local}
	if local != nil {
		m.disks[local.Name()] = local
		m.def = local.Name()
	}
	for _, d := range extra {
		m.disks[d.Name()] = d
		if m.def == "" {
			m.def = d.Name()
		}
	}
	return m
}

// Disk returns the named disk.
func (m *Manager) Disk(name string) (Disk, error) {
	d, ok := m.disks[name]
	if !ok {
		return nil, fmt.Errorf("storage: disk %q is not configured", name)
	}
	return d, nil
}

// Default returns the disk named by STORAGE_DISK.
func (m *Manager) Default() Disk { return m.disks[m.def] }

// Local returns the local disk for serving /storage.
func (m *Manager) Local() *LocalDisk { return m.local }
