package bench

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

func shardFilename(dataDir string, shard int) string {
	return filepath.Join(dataDir, fmt.Sprintf("%09d.csv", shard))
}

func datasetInfoFilename(dataDir string) string {
	return filepath.Join(dataDir, "dataset_info.json")
}

type datasetInfo struct {
	Shards            int     `json:"shards"`
	RecordsPerShard   int     `json:"records_per_shard"`
	Seed              uint64  `json:"seed"`
	Order             Order   `json:"order"`
	DuplicateFraction float64 `json:"duplicate_fraction"`
}

// shardFiles lists the shard files of the dataset in dataDir.
func (info datasetInfo) shardFiles(dataDir string) []string {
	files := make([]string, 0, info.Shards)
	for i := 1; i <= info.Shards; i++ {
		files = append(files, shardFilename(dataDir, i))
	}
	return files
}

func writeDatasetInfo(dataDir string, info datasetInfo) error {
	filename := datasetInfoFilename(dataDir)
	bz, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling info file: %w", err)
	}
	return os.WriteFile(filename, bz, 0o644)
}

func readDatasetInfo(dataDir string) (datasetInfo, error) {
	filename := datasetInfoFilename(dataDir)
	bz, err := os.ReadFile(filename)
	if err != nil {
		return datasetInfo{}, fmt.Errorf("error reading info file: %w", err)
	}
	var info datasetInfo
	err = json.Unmarshal(bz, &info)
	if err != nil {
		return datasetInfo{}, fmt.Errorf("error unmarshaling info file: %w", err)
	}
	return info, nil
}
