package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mkamgno/ohada_ledger/internal/apperrors"
	"github.com/mkamgno/ohada_ledger/internal/core/domain"
	portsrepo "github.com/mkamgno/ohada_ledger/internal/core/ports/repositories"
	portssvc "github.com/mkamgno/ohada_ledger/internal/core/ports/services"
	"github.com/mkamgno/ohada_ledger/internal/dto"
	"github.com/mkamgno/ohada_ledger/internal/events"
	"github.com/mkamgno/ohada_ledger/internal/middleware"
	"github.com/mkamgno/ohada_ledger/internal/statemachine"
	"github.com/mkamgno/ohada_ledger/internal/utils/accounting"
)

var (
	ErrUnbalancedEntry       = errors.New("entry debits and credits do not balance")
	ErrEntryValidated        = errors.New("entry is validated and can no longer be modified")
	ErrEntryAlreadyValidated = errors.New("entry is already validated")
	ErrEntryMinLines         = errors.New("entry must have at least two lines to be validated")
	ErrDateOutsidePeriod     = errors.New("entry date does not fall within the fiscal period")
	ErrEntryNumberInvalid    = errors.New("entry number does not match the generated number format")
	ErrCeilingExceeded       = errors.New("source document amount exceeds the template client ceiling")
)

// GenerationDefaults carries the tenant-wide default accounts used when an
// operation template resolves its counter-account dynamically.
type GenerationDefaults struct {
	ReceivableAccount string // Counter for credit-principal templates (clients)
	PayableAccount    string // Counter for debit-principal templates (fournisseurs)
	VATAccount        string // VAT line of invoice entries
}

// postingService is the double-entry posting engine. Every write runs the
// full gate sequence: active journal, open period, active accounts, and
// draft status for mutations.
type postingService struct {
	entryRepo  portsrepo.EntryRepositoryWithTx
	accountSvc portssvc.AccountReaderSvc
	journalSvc portssvc.JournalReaderSvc
	periodSvc  portssvc.PeriodReaderSvc
	sourceSvc  portssvc.SourceSvcFacade
	tplSvc     portssvc.TemplateReaderSvc
	auditSvc   portssvc.AuditSvcFacade
	publisher  events.Publisher
	defaults   GenerationDefaults
}

// NewPostingService creates the posting engine service.
func NewPostingService(
	entryRepo portsrepo.EntryRepositoryWithTx,
	accountSvc portssvc.AccountReaderSvc,
	journalSvc portssvc.JournalReaderSvc,
	periodSvc portssvc.PeriodReaderSvc,
	sourceSvc portssvc.SourceSvcFacade,
	tplSvc portssvc.TemplateReaderSvc,
	auditSvc portssvc.AuditSvcFacade,
	publisher events.Publisher,
	defaults GenerationDefaults,
) portssvc.PostingSvcFacade {
	return &postingService{
		entryRepo:  entryRepo,
		accountSvc: accountSvc,
		journalSvc: journalSvc,
		periodSvc:  periodSvc,
		sourceSvc:  sourceSvc,
		tplSvc:     tplSvc,
		auditSvc:   auditSvc,
		publisher:  publisher,
		defaults:   defaults,
	}
}

var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// newEntryNumber builds an entry number in the generated format from a
// seed identifier, typically the source document ID or the entry's own ID.
func newEntryNumber(seed string, now time.Time) string {
	return fmt.Sprintf("ECR-%s-%d", seed, now.UnixMilli())
}

func snapshot(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// CreateEntry creates a draft entry after gating on an active journal and
// an open period containing the entry date. Lines are added separately.
func (s *postingService) CreateEntry(ctx context.Context, tenantID string, req dto.CreateEntryRequest, userID string) (*domain.Entry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	journal, err := s.journalSvc.GetActiveJournal(ctx, tenantID, req.JournalID)
	if err != nil {
		return nil, err
	}

	period, err := s.periodSvc.GetOpenPeriodByID(ctx, tenantID, req.PeriodID)
	if err != nil {
		return nil, err
	}
	if !period.Contains(req.EntryDate) {
		return nil, fmt.Errorf("%w: %s not in [%s, %s]", ErrDateOutsidePeriod,
			req.EntryDate.Format("2006-01-02"), period.StartDate.Format("2006-01-02"), period.EndDate.Format("2006-01-02"))
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()

	number := req.Number
	if number == "" {
		number = newEntryNumber(entryID, now)
	} else if !domain.ValidGeneratedNumber(number) {
		return nil, fmt.Errorf("%w: %q", ErrEntryNumberInvalid, number)
	}

	entry := domain.Entry{
		EntryID:     entryID,
		TenantID:    tenantID,
		Number:      number,
		Label:       req.Label,
		EntryDate:   req.EntryDate,
		JournalID:   journal.JournalID,
		PeriodID:    period.PeriodID,
		Reference:   req.Reference,
		Notes:       req.Notes,
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
		Status:      domain.Draft,
		AuditFields: domain.NewAuditFields(userID, now),
	}

	if err := s.entryRepo.SaveEntry(ctx, entry, nil); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: entry number %s already exists", apperrors.ErrDuplicate, number)
		}
		logger.Error("Failed to save entry", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	s.auditSvc.Record(ctx, domain.AuditRecord{
		TenantID:      tenantID,
		EntryID:       &entry.EntryID,
		Action:        domain.AuditCreate,
		Actor:         userID,
		Details:       fmt.Sprintf("created draft entry %s in journal %s", entry.Number, journal.Code),
		AfterSnapshot: snapshot(entry),
	})
	s.publisher.Publish(ctx, events.Event{
		Topic:      events.TopicEntryCreated,
		TenantID:   tenantID,
		EntryID:    entry.EntryID,
		Number:     entry.Number,
		Actor:      userID,
		OccurredAt: now,
	})

	logger.Info("Entry created", slog.String("entry_id", entry.EntryID), slog.String("number", entry.Number))
	return &entry, nil
}

// getDraftEntry fetches an entry and rejects any mutation once validated.
func (s *postingService) getDraftEntry(ctx context.Context, tenantID, entryID string) (*domain.Entry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if entry.IsValidated() {
		return nil, fmt.Errorf("%w: %s", ErrEntryValidated, entry.Number)
	}
	return entry, nil
}

// refreshTotals recomputes and persists the denormalized entry totals
// after any line mutation.
func (s *postingService) refreshTotals(ctx context.Context, tenantID, entryID, userID string, now time.Time) error {
	lines, err := s.entryRepo.FindLinesByEntryID(ctx, tenantID, entryID)
	if err != nil {
		return fmt.Errorf("failed to reload lines for totals: %w", err)
	}
	totalDebit, totalCredit := accounting.ComputeTotals(lines)
	if err := s.entryRepo.UpdateEntryTotals(ctx, tenantID, entryID, totalDebit, totalCredit, userID, now); err != nil {
		return fmt.Errorf("failed to update entry totals: %w", err)
	}
	return nil
}

// AddLine appends a line to a draft entry. The target account must be
// active, and the side opposite to the sense is forced to zero.
func (s *postingService) AddLine(ctx context.Context, tenantID, entryID string, req dto.AddLineRequest, userID string) (*domain.EntryLine, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.getDraftEntry(ctx, tenantID, entryID)
	if err != nil {
		return nil, err
	}

	if _, err := s.accountSvc.GetActiveAccountByNumber(ctx, tenantID, req.AccountNumber); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	line := domain.EntryLine{
		LineID:        uuid.NewString(),
		TenantID:      tenantID,
		EntryID:       entry.EntryID,
		AccountNumber: req.AccountNumber,
		Label:         req.Label,
		Sense:         req.Sense,
		Debit:         req.Debit,
		Credit:        req.Credit,
		Notes:         req.Notes,
		EntryDate:     entry.EntryDate,
		AuditFields:   domain.NewAuditFields(userID, now),
	}

	line, err = accounting.NormalizeLine(line)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if err := s.entryRepo.SaveLine(ctx, line); err != nil {
		logger.Error("Failed to save line", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to save line: %w", err)
	}

	if err := s.refreshTotals(ctx, tenantID, entryID, userID, now); err != nil {
		logger.Error("Failed to refresh totals after add", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, err
	}

	s.auditSvc.Record(ctx, domain.AuditRecord{
		TenantID:      tenantID,
		EntryID:       &entry.EntryID,
		Action:        domain.AuditUpdate,
		Actor:         userID,
		Details:       fmt.Sprintf("added %s line of %s on account %s", line.Sense, line.Amount(), line.AccountNumber),
		AfterSnapshot: snapshot(line),
	})

	logger.Info("Line added", slog.String("entry_id", entryID), slog.String("line_id", line.LineID), slog.String("account", line.AccountNumber))
	return &line, nil
}

// UpdateLine mutates a line of a draft entry.
func (s *postingService) UpdateLine(ctx context.Context, tenantID, entryID, lineID string, req dto.UpdateLineRequest, userID string) (*domain.EntryLine, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.getDraftEntry(ctx, tenantID, entryID); err != nil {
		return nil, err
	}

	line, err := s.entryRepo.FindLineByID(ctx, tenantID, entryID, lineID)
	if err != nil {
		return nil, fmt.Errorf("failed to find line %s: %w", lineID, err)
	}
	before := snapshot(*line)

	updated := false
	if req.AccountNumber != nil {
		if _, err := s.accountSvc.GetActiveAccountByNumber(ctx, tenantID, *req.AccountNumber); err != nil {
			return nil, err
		}
		line.AccountNumber = *req.AccountNumber
		updated = true
	}
	if req.Label != nil {
		line.Label = *req.Label
		updated = true
	}
	if req.Sense != nil {
		line.Sense = *req.Sense
		updated = true
	}
	if req.Debit != nil {
		line.Debit = *req.Debit
		updated = true
	}
	if req.Credit != nil {
		line.Credit = *req.Credit
		updated = true
	}
	if req.Notes != nil {
		line.Notes = *req.Notes
		updated = true
	}

	if !updated {
		return line, nil
	}

	normalized, err := accounting.NormalizeLine(*line)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	now := time.Now().UTC()
	normalized.Touch(userID, now)

	if err := s.entryRepo.UpdateLine(ctx, normalized); err != nil {
		logger.Error("Failed to update line", slog.String("error", err.Error()), slog.String("line_id", lineID))
		return nil, fmt.Errorf("failed to update line: %w", err)
	}

	if err := s.refreshTotals(ctx, tenantID, entryID, userID, now); err != nil {
		logger.Error("Failed to refresh totals after update", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, err
	}

	s.auditSvc.Record(ctx, domain.AuditRecord{
		TenantID:       tenantID,
		EntryID:        &entryID,
		Action:         domain.AuditUpdate,
		Actor:          userID,
		Details:        fmt.Sprintf("updated line %s", lineID),
		BeforeSnapshot: before,
		AfterSnapshot:  snapshot(normalized),
	})

	logger.Info("Line updated", slog.String("entry_id", entryID), slog.String("line_id", lineID))
	return &normalized, nil
}

// DeleteLine removes a line from a draft entry.
func (s *postingService) DeleteLine(ctx context.Context, tenantID, entryID, lineID, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.getDraftEntry(ctx, tenantID, entryID); err != nil {
		return err
	}

	line, err := s.entryRepo.FindLineByID(ctx, tenantID, entryID, lineID)
	if err != nil {
		return fmt.Errorf("failed to find line %s: %w", lineID, err)
	}

	if err := s.entryRepo.DeleteLine(ctx, tenantID, entryID, lineID); err != nil {
		logger.Error("Failed to delete line", slog.String("error", err.Error()), slog.String("line_id", lineID))
		return fmt.Errorf("failed to delete line: %w", err)
	}

	now := time.Now().UTC()
	if err := s.refreshTotals(ctx, tenantID, entryID, userID, now); err != nil {
		logger.Error("Failed to refresh totals after delete", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return err
	}

	s.auditSvc.Record(ctx, domain.AuditRecord{
		TenantID:       tenantID,
		EntryID:        &entryID,
		Action:         domain.AuditDelete,
		Actor:          userID,
		Details:        fmt.Sprintf("deleted line %s from account %s", lineID, line.AccountNumber),
		BeforeSnapshot: snapshot(*line),
	})

	logger.Info("Line deleted", slog.String("entry_id", entryID), slog.String("line_id", lineID))
	return nil
}

// ValidateEntry irreversibly locks a balanced entry. The status flip is a
// conditional update, so concurrent validations cannot both succeed.
func (s *postingService) ValidateEntry(ctx context.Context, tenantID, entryID, userID string) (*domain.Entry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.entryRepo.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}

	machine := statemachine.NewEntryFSM(entry)
	if !machine.MayValidate() {
		return nil, fmt.Errorf("%w: %s", ErrEntryAlreadyValidated, entry.Number)
	}

	lines, err := s.entryRepo.FindLinesByEntryID(ctx, tenantID, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lines for validation: %w", err)
	}
	if len(lines) < 2 {
		return nil, fmt.Errorf("%w: has %d", ErrEntryMinLines, len(lines))
	}

	totalDebit, totalCredit := accounting.ComputeTotals(lines)
	if !accounting.IsBalanced(totalDebit, totalCredit) {
		return nil, fmt.Errorf("%w: debits %s, credits %s", ErrUnbalancedEntry, totalDebit, totalCredit)
	}

	// The period may have been closed since the entry was drafted.
	if _, err := s.periodSvc.GetOpenPeriodByID(ctx, tenantID, entry.PeriodID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	flipped, err := s.entryRepo.MarkValidated(ctx, tenantID, entryID, userID, now, totalDebit, totalCredit)
	if err != nil {
		logger.Error("Failed to mark entry validated", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to validate entry: %w", err)
	}
	if !flipped {
		// Lost the race against a concurrent validation.
		return nil, fmt.Errorf("%w: %s", ErrEntryAlreadyValidated, entry.Number)
	}

	if err := machine.Validate(ctx); err != nil {
		return nil, fmt.Errorf("failed to transition entry state: %w", err)
	}
	entry.TotalDebit = totalDebit
	entry.TotalCredit = totalCredit
	entry.ValidatedAt = &now
	entry.ValidatedBy = userID
	entry.Touch(userID, now)
	entry.Lines = lines

	s.auditSvc.Record(ctx, domain.AuditRecord{
		TenantID:      tenantID,
		EntryID:       &entry.EntryID,
		Action:        domain.AuditValidate,
		Actor:         userID,
		Details:       fmt.Sprintf("validated entry %s (debits %s, credits %s)", entry.Number, totalDebit, totalCredit),
		AfterSnapshot: snapshot(*entry),
	})
	s.publisher.Publish(ctx, events.Event{
		Topic:      events.TopicEntryValidated,
		TenantID:   tenantID,
		EntryID:    entry.EntryID,
		Number:     entry.Number,
		Actor:      userID,
		OccurredAt: now,
	})

	logger.Info("Entry validated", slog.String("entry_id", entryID), slog.String("number", entry.Number))
	return entry, nil
}

// counterAccount resolves the counter-account of a generated entry: the
// template's fixed account, or the tenant default picked by principal
// sense (clients for credit principals, fournisseurs for debit ones).
func (s *postingService) counterAccount(tpl domain.OperationTemplate) string {
	policy := tpl.CounterPolicy(s.defaults.VATAccount)
	if policy.Fixed {
		return policy.Number
	}
	if tpl.PrincipalSense == domain.Credit {
		return s.defaults.ReceivableAccount
	}
	return s.defaults.PayableAccount
}

// GenerateEntry builds and persists a balanced entry from a source
// document and an operation template, atomically with its lines.
func (s *postingService) GenerateEntry(ctx context.Context, tenantID string, req dto.GenerateEntryRequest, userID string) (*domain.Entry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	doc, err := s.sourceSvc.GetSourceByID(ctx, tenantID, req.SourceDocumentID)
	if err != nil {
		return nil, err
	}

	tpl, err := s.tplSvc.GetTemplateByID(ctx, tenantID, req.TemplateID)
	if err != nil {
		return nil, err
	}
	if !tpl.IsActive {
		return nil, fmt.Errorf("%w: %s", ErrTemplateInactive, tpl.TemplateID)
	}
	if tpl.ClientCeiling != nil && doc.Amount.GreaterThan(*tpl.ClientCeiling) {
		return nil, fmt.Errorf("%w: %s > %s", ErrCeilingExceeded, doc.Amount, tpl.ClientCeiling)
	}

	journal, err := s.journalSvc.GetActiveJournal(ctx, tenantID, tpl.JournalID)
	if err != nil {
		return nil, err
	}

	period, err := s.periodSvc.FindOpenPeriodForDate(ctx, tenantID, doc.DocDate)
	if err != nil {
		return nil, err
	}

	accounts := domain.GenerationAccounts{
		Principal: tpl.PrincipalAccount,
		Counter:   s.counterAccount(*tpl),
		VAT:       s.defaults.VATAccount,
	}

	drafts, err := domain.BuildLineDrafts(*doc, *tpl, accounts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	numbers := make([]string, 0, len(drafts))
	for _, draft := range drafts {
		numbers = append(numbers, draft.AccountNumber)
	}
	if _, err := s.accountSvc.GetActiveAccountsByNumbers(ctx, tenantID, uniqueStrings(numbers)); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()

	lines := make([]domain.EntryLine, len(drafts))
	for i, draft := range drafts {
		line := accounting.LineFromDraft(draft)
		line.LineID = uuid.NewString()
		line.TenantID = tenantID
		line.EntryID = entryID
		line.EntryDate = doc.DocDate
		line.AuditFields = domain.NewAuditFields(userID, now)
		lines[i] = line
	}
	totalDebit, totalCredit := accounting.ComputeTotals(lines)

	entry := domain.Entry{
		EntryID:     entryID,
		TenantID:    tenantID,
		Number:      newEntryNumber(doc.DocID, now),
		Label:       doc.Label,
		EntryDate:   doc.DocDate,
		JournalID:   journal.JournalID,
		PeriodID:    period.PeriodID,
		Reference:   doc.Reference,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
		Status:      domain.Draft,
		AuditFields: domain.NewAuditFields(userID, now),
	}

	if err := s.entryRepo.SaveEntry(ctx, entry, lines); err != nil {
		logger.Error("Failed to save generated entry", slog.String("error", err.Error()), slog.String("doc_id", doc.DocID))
		return nil, fmt.Errorf("failed to save generated entry: %w", err)
	}
	entry.Lines = lines

	s.auditSvc.Record(ctx, domain.AuditRecord{
		TenantID:      tenantID,
		EntryID:       &entry.EntryID,
		Action:        domain.AuditGenerate,
		Actor:         userID,
		Details:       fmt.Sprintf("generated entry %s from %s document %s via template (%s, %s)", entry.Number, doc.Type, doc.DocID, tpl.OperationType, tpl.PaymentMode),
		AfterSnapshot: snapshot(entry),
	})
	s.publisher.Publish(ctx, events.Event{
		Topic:      events.TopicEntryGenerated,
		TenantID:   tenantID,
		EntryID:    entry.EntryID,
		Number:     entry.Number,
		Actor:      userID,
		OccurredAt: now,
	})

	logger.Info("Entry generated", slog.String("entry_id", entry.EntryID), slog.String("number", entry.Number), slog.String("doc_id", doc.DocID))
	return &entry, nil
}

// GetEntryByID retrieves an entry with its lines populated.
func (s *postingService) GetEntryByID(ctx context.Context, tenantID, entryID string) (*domain.Entry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, tenantID, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}

	lines, err := s.entryRepo.FindLinesByEntryID(ctx, tenantID, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lines for entry %s: %w", entryID, err)
	}
	entry.Lines = lines

	return entry, nil
}

// ListEntries retrieves a filtered, token-paginated list of entries.
func (s *postingService) ListEntries(ctx context.Context, tenantID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	filter := portsrepo.EntryFilter{
		From:            params.From,
		To:              params.To,
		JournalID:       params.JournalID,
		UnvalidatedOnly: params.UnvalidatedOnly,
	}

	entries, nextToken, err := s.entryRepo.ListEntries(ctx, tenantID, filter, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	return &dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
