// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package state

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// ErrNoSnapshot is returned by LoadSchedule when nothing has been saved yet.
var ErrNoSnapshot = errors.New("no saved schedule")

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// GetScheduleFilePath returns the snapshot path for username inside stateDir.
// Characters that are awkward in file names are replaced with dashes.
// Returns: <stateDir>/<username>.schedule
func GetScheduleFilePath(stateDir, username string) string {
	safeName := unsafeFileChars.ReplaceAllString(username, "-")
	if safeName == "" {
		safeName = "anonymous"
	}
	return filepath.Join(stateDir, safeName+".schedule")
}

// SaveSchedule atomically writes the snapshot to disk with integrity validation.
// It uses a write-to-temp-and-rename pattern to ensure atomicity.
func SaveSchedule(snapshot *ScheduleSnapshot, stateFile string) error {
	snapshot.Version = CurrentVersion
	snapshot.Checksum = ""

	checksum, err := calculateChecksum(snapshot)
	if err != nil {
		return fmt.Errorf("failed to calculate checksum: %w", err)
	}
	snapshot.Checksum = checksum

	if mkdirErr := os.MkdirAll(filepath.Dir(stateFile), 0o700); mkdirErr != nil {
		return fmt.Errorf("failed to create state directory: %w", mkdirErr)
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	tempFile := stateFile + ".tmp"
	file, err := os.OpenFile(tempFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create temporary snapshot file: %w", err)
	}
	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to write temporary snapshot file: %w", err)
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tempFile, stateFile); err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// LoadSchedule reads a snapshot and verifies its version and checksum.
func LoadSchedule(stateFile string) (*ScheduleSnapshot, error) {
	data, err := os.ReadFile(stateFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s; run 'purdueio schedule' first", ErrNoSnapshot, stateFile)
		}
		return nil, fmt.Errorf("failed to read snapshot file %s: %w", stateFile, err)
	}

	var snapshot ScheduleSnapshot
	if unmarshalErr := json.Unmarshal(data, &snapshot); unmarshalErr != nil {
		return nil, fmt.Errorf("snapshot file is corrupted (invalid JSON): %w", unmarshalErr)
	}

	if snapshot.Version != CurrentVersion {
		return nil, fmt.Errorf("snapshot file version (%d) is incompatible with current version (%d)",
			snapshot.Version, CurrentVersion)
	}

	savedChecksum := snapshot.Checksum
	calculatedChecksum, err := calculateChecksum(&snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate checksum for validation: %w", err)
	}
	if savedChecksum != calculatedChecksum {
		return nil, fmt.Errorf("snapshot file is corrupted (checksum mismatch)")
	}

	return &snapshot, nil
}

// DeleteSchedule removes a snapshot. A missing file is not an error.
func DeleteSchedule(stateFile string) error {
	err := os.Remove(stateFile)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete snapshot file: %w", err)
	}
	return nil
}

// calculateChecksum hashes the snapshot with its Checksum field cleared.
func calculateChecksum(snapshot *ScheduleSnapshot) (string, error) {
	snapshotCopy := *snapshot
	snapshotCopy.Checksum = ""

	data, err := json.Marshal(snapshotCopy)
	if err != nil {
		return "", err
	}

	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}
