package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/mkamgno/ohada_ledger/internal/core/domain"
	portsrepo "github.com/mkamgno/ohada_ledger/internal/core/ports/repositories"
	"github.com/mkamgno/ohada_ledger/internal/dto"
	"github.com/mkamgno/ohada_ledger/internal/events"
)

// --- Mock EntryRepository ---

type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, tenantID, entryID string) (*domain.Entry, error) {
	args := m.Called(ctx, tenantID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entry), args.Error(1)
}

func (m *MockEntryRepository) ListEntries(ctx context.Context, tenantID string, filter portsrepo.EntryFilter, limit int, nextToken *string) ([]domain.Entry, *string, error) {
	args := m.Called(ctx, tenantID, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return args.Get(0).([]domain.Entry), token, args.Error(2)
}

func (m *MockEntryRepository) CountEntriesByJournal(ctx context.Context, tenantID, journalID string) (int64, error) {
	args := m.Called(ctx, tenantID, journalID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEntryRepository) CountEntriesByPeriod(ctx context.Context, tenantID, periodID string) (int64, error) {
	args := m.Called(ctx, tenantID, periodID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEntryRepository) SaveEntry(ctx context.Context, entry domain.Entry, lines []domain.EntryLine) error {
	args := m.Called(ctx, entry, lines)
	return args.Error(0)
}

func (m *MockEntryRepository) UpdateEntryTotals(ctx context.Context, tenantID, entryID string, totalDebit, totalCredit decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tenantID, entryID, totalDebit, totalCredit, userID, now)
	return args.Error(0)
}

func (m *MockEntryRepository) MarkValidated(ctx context.Context, tenantID, entryID, userID string, now time.Time, totalDebit, totalCredit decimal.Decimal) (bool, error) {
	args := m.Called(ctx, tenantID, entryID, userID, now, totalDebit, totalCredit)
	return args.Bool(0), args.Error(1)
}

func (m *MockEntryRepository) FindLineByID(ctx context.Context, tenantID, entryID, lineID string) (*domain.EntryLine, error) {
	args := m.Called(ctx, tenantID, entryID, lineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EntryLine), args.Error(1)
}

func (m *MockEntryRepository) FindLinesByEntryID(ctx context.Context, tenantID, entryID string) ([]domain.EntryLine, error) {
	args := m.Called(ctx, tenantID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.EntryLine), args.Error(1)
}

func (m *MockEntryRepository) SaveLine(ctx context.Context, line domain.EntryLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockEntryRepository) UpdateLine(ctx context.Context, line domain.EntryLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockEntryRepository) DeleteLine(ctx context.Context, tenantID, entryID, lineID string) error {
	args := m.Called(ctx, tenantID, entryID, lineID)
	return args.Error(0)
}

func (m *MockEntryRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockEntryRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockEntryRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByNumber(ctx context.Context, tenantID, number string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByNumbers(ctx context.Context, tenantID string, numbers []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tenantID, numbers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, tenantID string, filter portsrepo.AccountFilter, limit, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, tenantID, accountID, userID string, now time.Time) error {
	args := m.Called(ctx, tenantID, accountID, userID, now)
	return args.Error(0)
}

// --- Mock JournalRepository ---

type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, tenantID, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, tenantID, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindJournalByCode(ctx context.Context, tenantID, code string) (*domain.Journal, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) ListJournals(ctx context.Context, tenantID string, limit, offset int) ([]domain.Journal, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal) error {
	args := m.Called(ctx, journal)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateJournal(ctx context.Context, journal domain.Journal) error {
	args := m.Called(ctx, journal)
	return args.Error(0)
}

func (m *MockJournalRepository) DeleteJournal(ctx context.Context, tenantID, journalID string) error {
	args := m.Called(ctx, tenantID, journalID)
	return args.Error(0)
}

// --- Mock TemplateRepository ---

type MockTemplateRepository struct {
	mock.Mock
}

func (m *MockTemplateRepository) FindTemplateByID(ctx context.Context, tenantID, templateID string) (*domain.OperationTemplate, error) {
	args := m.Called(ctx, tenantID, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OperationTemplate), args.Error(1)
}

func (m *MockTemplateRepository) FindTemplateByTypeAndMode(ctx context.Context, tenantID, operationType, paymentMode string) (*domain.OperationTemplate, error) {
	args := m.Called(ctx, tenantID, operationType, paymentMode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OperationTemplate), args.Error(1)
}

func (m *MockTemplateRepository) FindTemplatesByPrincipalAccount(ctx context.Context, tenantID, accountNumber string) ([]domain.OperationTemplate, error) {
	args := m.Called(ctx, tenantID, accountNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OperationTemplate), args.Error(1)
}

func (m *MockTemplateRepository) ListTemplates(ctx context.Context, tenantID string, limit, offset int) ([]domain.OperationTemplate, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OperationTemplate), args.Error(1)
}

func (m *MockTemplateRepository) SaveTemplate(ctx context.Context, template domain.OperationTemplate) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *MockTemplateRepository) UpdateTemplate(ctx context.Context, template domain.OperationTemplate) error {
	args := m.Called(ctx, template)
	return args.Error(0)
}

func (m *MockTemplateRepository) DeleteTemplate(ctx context.Context, tenantID, templateID string) error {
	args := m.Called(ctx, tenantID, templateID)
	return args.Error(0)
}

// --- Mock SourceRepository ---

type MockSourceRepository struct {
	mock.Mock
}

func (m *MockSourceRepository) FindSourceByID(ctx context.Context, tenantID, docID string) (*domain.SourceDocument, error) {
	args := m.Called(ctx, tenantID, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SourceDocument), args.Error(1)
}

func (m *MockSourceRepository) SaveSourceDocument(ctx context.Context, doc domain.SourceDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

// --- Mock PeriodRepository ---

type MockPeriodRepository struct {
	mock.Mock
}

func (m *MockPeriodRepository) FindPeriodByID(ctx context.Context, tenantID, periodID string) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, tenantID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockPeriodRepository) FindPeriodByCode(ctx context.Context, tenantID, code string) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockPeriodRepository) FindOpenPeriodForDate(ctx context.Context, tenantID string, date time.Time) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, tenantID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockPeriodRepository) ListOverlapping(ctx context.Context, tenantID string, start, end time.Time, excludeID string) ([]domain.FiscalPeriod, error) {
	args := m.Called(ctx, tenantID, start, end, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalPeriod), args.Error(1)
}

func (m *MockPeriodRepository) ListPeriods(ctx context.Context, tenantID string, limit, offset int) ([]domain.FiscalPeriod, error) {
	args := m.Called(ctx, tenantID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalPeriod), args.Error(1)
}

func (m *MockPeriodRepository) SavePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockPeriodRepository) UpdatePeriod(ctx context.Context, period domain.FiscalPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockPeriodRepository) ClosePeriod(ctx context.Context, tenantID, periodID, userID string, now time.Time) (bool, error) {
	args := m.Called(ctx, tenantID, periodID, userID, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockPeriodRepository) DeletePeriod(ctx context.Context, tenantID, periodID string) error {
	args := m.Called(ctx, tenantID, periodID)
	return args.Error(0)
}

// --- Mock service facades used by the posting engine ---

type MockAccountSvc struct {
	mock.Mock
}

func (m *MockAccountSvc) GetAccountByID(ctx context.Context, tenantID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountSvc) GetActiveAccountByNumber(ctx context.Context, tenantID, number string) (*domain.Account, error) {
	args := m.Called(ctx, tenantID, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountSvc) GetActiveAccountsByNumbers(ctx context.Context, tenantID string, numbers []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tenantID, numbers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountSvc) ListAccounts(ctx context.Context, tenantID string, params dto.ListAccountsParams) ([]domain.Account, error) {
	args := m.Called(ctx, tenantID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

type MockJournalSvc struct {
	mock.Mock
}

func (m *MockJournalSvc) GetJournalByID(ctx context.Context, tenantID, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, tenantID, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalSvc) GetActiveJournal(ctx context.Context, tenantID, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, tenantID, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalSvc) ListJournals(ctx context.Context, tenantID string, params dto.ListJournalsParams) ([]domain.Journal, error) {
	args := m.Called(ctx, tenantID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}

type MockPeriodSvc struct {
	mock.Mock
}

func (m *MockPeriodSvc) GetPeriodByID(ctx context.Context, tenantID, periodID string) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, tenantID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockPeriodSvc) GetOpenPeriodByID(ctx context.Context, tenantID, periodID string) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, tenantID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockPeriodSvc) FindOpenPeriodForDate(ctx context.Context, tenantID string, date time.Time) (*domain.FiscalPeriod, error) {
	args := m.Called(ctx, tenantID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FiscalPeriod), args.Error(1)
}

func (m *MockPeriodSvc) ListPeriods(ctx context.Context, tenantID string, params dto.ListPeriodsParams) ([]domain.FiscalPeriod, error) {
	args := m.Called(ctx, tenantID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FiscalPeriod), args.Error(1)
}

type MockTemplateSvc struct {
	mock.Mock
}

func (m *MockTemplateSvc) GetTemplateByID(ctx context.Context, tenantID, templateID string) (*domain.OperationTemplate, error) {
	args := m.Called(ctx, tenantID, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OperationTemplate), args.Error(1)
}

func (m *MockTemplateSvc) FindTemplateByTypeAndMode(ctx context.Context, tenantID, operationType, paymentMode string) (*domain.OperationTemplate, error) {
	args := m.Called(ctx, tenantID, operationType, paymentMode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OperationTemplate), args.Error(1)
}

func (m *MockTemplateSvc) ListTemplates(ctx context.Context, tenantID string, params dto.ListTemplatesParams) ([]domain.OperationTemplate, error) {
	args := m.Called(ctx, tenantID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OperationTemplate), args.Error(1)
}

type MockSourceSvc struct {
	mock.Mock
}

func (m *MockSourceSvc) RegisterSource(ctx context.Context, tenantID string, req dto.CreateSourceRequest, userID string) (*domain.SourceDocument, error) {
	args := m.Called(ctx, tenantID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SourceDocument), args.Error(1)
}

func (m *MockSourceSvc) GetSourceByID(ctx context.Context, tenantID, docID string) (*domain.SourceDocument, error) {
	args := m.Called(ctx, tenantID, docID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SourceDocument), args.Error(1)
}

type MockAuditSvc struct {
	mock.Mock
}

func (m *MockAuditSvc) Record(ctx context.Context, record domain.AuditRecord) {
	m.Called(ctx, record)
}

func (m *MockAuditSvc) ListRecords(ctx context.Context, tenantID string, params dto.ListAuditParams) (*dto.ListAuditResponse, error) {
	args := m.Called(ctx, tenantID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListAuditResponse), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event events.Event) {
	m.Called(ctx, event)
}
