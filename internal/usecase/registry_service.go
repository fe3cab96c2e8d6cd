package usecase

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/vitos/trade_stats_bridge/internal/domain"
)

// RegistryService loads the participant roster from a CSV export and keeps
// the participants table in step with it.
type RegistryService struct {
	repo   domain.ParticipantRepository
	logger *zap.Logger
}

func NewRegistryService(repo domain.ParticipantRepository, logger *zap.Logger) *RegistryService {
	return &RegistryService{repo: repo, logger: logger}
}

// SyncFromCSV imports the roster file. A missing file is not an error, the
// registry simply stays as it is.
func (s *RegistryService) SyncFromCSV(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.Info("registry file absent, keeping current roster", zap.String("path", path))
			return nil
		}
		return fmt.Errorf("open registry %s: %w", path, err)
	}
	defer f.Close()

	participants, err := ParseParticipantsCSV(f)
	if err != nil {
		return fmt.Errorf("parse registry %s: %w", path, err)
	}
	if len(participants) == 0 {
		s.logger.Warn("registry file has no usable rows", zap.String("path", path))
		return nil
	}

	if err := s.repo.UpsertParticipants(ctx, participants); err != nil {
		return fmt.Errorf("upsert participants: %w", err)
	}
	s.logger.Info("registry synced", zap.Int("participants", len(participants)))
	return nil
}

// ParseParticipantsCSV reads a roster export. Columns are located by header
// name, a UTF-8 BOM is tolerated, and rows without a nickname or account id
// are skipped rather than failing the import.
func ParseParticipantsCSV(r io.Reader) ([]*domain.Participant, error) {
	br := bufio.NewReader(r)
	if bom, err := br.Peek(3); err == nil && bytes.Equal(bom, []byte{0xEF, 0xBB, 0xBF}) {
		br.Discard(3)
	}

	cr := csv.NewReader(br)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"nickname", "account_id"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("registry header missing column %q", required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var out []*domain.Participant
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		p := &domain.Participant{
			Nickname:         field(row, "nickname"),
			AccountID:        field(row, "account_id"),
			InvestorPassword: field(row, "investor_password"),
			Server:           field(row, "server"),
		}
		if p.Nickname == "" || p.AccountID == "" {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
