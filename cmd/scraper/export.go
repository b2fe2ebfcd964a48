package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-cricket/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-cricket/internal/usecase"
)

type exportDocument struct {
	Matches     []string                 `json:"matches"`
	Leaderboard []fantasy.LeaderboardRow `json:"leaderboard"`
}

func collectExport(ctx context.Context, points fantasy.Repository, matchIDs []string) (exportDocument, error) {
	rows, err := points.ListByMatches(ctx, matchIDs)
	if err != nil {
		return exportDocument{}, fmt.Errorf("list points for %d matches: %w", len(matchIDs), err)
	}
	if rows == nil {
		rows = []fantasy.LeaderboardRow{}
	}
	return exportDocument{Matches: matchIDs, Leaderboard: rows}, nil
}

func normalizeMatchIDs(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, value := range raw {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if _, ok := seen[part]; ok {
				continue
			}
			seen[part] = struct{}{}
			out = append(out, part)
		}
	}
	return out
}

// readBatch accepts either a bare batch or a run result carrying one.
func readBatch(path string) (usecase.Batch, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return usecase.Batch{}, fmt.Errorf("read batch %s: %w", path, err)
	}
	return decodeBatch(raw)
}

func decodeBatch(raw []byte) (usecase.Batch, error) {
	var wrapped struct {
		Batch *usecase.Batch `json:"batch"`
	}
	if err := sonic.Unmarshal(raw, &wrapped); err != nil {
		return usecase.Batch{}, fmt.Errorf("%w: decode batch: %w", usecase.ErrInvalidInput, err)
	}
	if wrapped.Batch != nil {
		return *wrapped.Batch, nil
	}

	var batch usecase.Batch
	if err := sonic.Unmarshal(raw, &batch); err != nil {
		return usecase.Batch{}, fmt.Errorf("%w: decode batch: %w", usecase.ErrInvalidInput, err)
	}
	return batch, nil
}

func writeJSON(path string, payload any) error {
	if path == "-" {
		return encodeJSON(os.Stdout, payload)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := encodeJSON(file, payload); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

func encodeJSON(w io.Writer, payload any) error {
	encoder := sonic.ConfigDefault.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(payload); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
