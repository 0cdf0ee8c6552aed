package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"reims-http-service/config"
	"reims-http-service/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// fakeDecisionClient 记录上游调用次数，可配置返回错误或阻塞
type fakeDecisionClient struct {
	calls   atomic.Int32
	err     error
	blockCh chan struct{}
}

func (f *fakeDecisionClient) SubmitDecision(ctx context.Context, decision *models.Decision) error {
	f.calls.Add(1)
	if f.blockCh != nil {
		<-f.blockCh
	}
	return f.err
}

// fakeNotifier 记录决策事件推送次数
type fakeNotifier struct {
	decisionEvents atomic.Int32
}

func (f *fakeNotifier) Connect() error { return nil }
func (f *fakeNotifier) Disconnect()    {}
func (f *fakeNotifier) PublishDecisionEvent(alert *models.Alert, decision *models.Decision) {
	f.decisionEvents.Add(1)
}
func (f *fakeNotifier) PublishAlertCreated(alert *models.Alert) error { return nil }
func (f *fakeNotifier) PublishSystemMessage(messageType string, message map[string]interface{}) error {
	return nil
}

func newTestAlertService(t *testing.T, client InterfaceDecisionClient, notifier InterfaceNotificationService) (*AlertService, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return &AlertService{
		DB:       db,
		Config:   &config.Config{},
		Client:   client,
		Notifier: notifier,
	}, mock
}

func pendingAlertRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "severity", "description", "property_id", "status"}).
		AddRow(1, models.SeverityCritical, "支出异常", 3, models.AlertStatusPending)
}

func TestReject_EmptyReasonFailsBeforeAnySideEffect(t *testing.T) {
	client := &fakeDecisionClient{}
	svc, mock := newTestAlertService(t, client, nil)

	alert, err := svc.Reject(context.Background(), 1, 10, "备注", "")

	assert.Nil(t, alert)
	assert.ErrorIs(t, err, ErrRejectReasonRequired)
	assert.Zero(t, client.calls.Load(), "校验失败不能触发上游调用")
	assert.NoError(t, mock.ExpectationsWereMet(), "校验失败不能触发数据库访问")
}

func TestReject_InvalidReasonFailsValidation(t *testing.T) {
	client := &fakeDecisionClient{}
	svc, mock := newTestAlertService(t, client, nil)

	alert, err := svc.Reject(context.Background(), 1, 10, "", "because_i_said_so")

	assert.Nil(t, alert)
	assert.ErrorIs(t, err, ErrRejectReasonInvalid)
	assert.Zero(t, client.calls.Load())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApprove_Success(t *testing.T) {
	client := &fakeDecisionClient{}
	notifier := &fakeNotifier{}
	svc, mock := newTestAlertService(t, client, notifier)

	mock.ExpectQuery("SELECT \\* FROM `alerts`").WillReturnRows(pendingAlertRows())
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `decisions`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE `alerts` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	alert, err := svc.Approve(context.Background(), 1, 42, "确认无误")

	require.NoError(t, err)
	require.NotNil(t, alert)
	assert.Equal(t, models.AlertStatusApproved, alert.Status)
	require.NotNil(t, alert.ApprovedBy)
	assert.Equal(t, uint(42), *alert.ApprovedBy)
	assert.NotNil(t, alert.ResolvedAt)
	assert.Equal(t, int32(1), client.calls.Load())
	assert.Equal(t, int32(1), notifier.decisionEvents.Load())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReject_Success(t *testing.T) {
	client := &fakeDecisionClient{}
	svc, mock := newTestAlertService(t, client, nil)

	mock.ExpectQuery("SELECT \\* FROM `alerts`").WillReturnRows(pendingAlertRows())
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `decisions`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE `alerts` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	alert, err := svc.Reject(context.Background(), 1, 42, "", models.RejectReasonDataIncorrect)

	require.NoError(t, err)
	assert.Equal(t, models.AlertStatusRejected, alert.Status)
	assert.Equal(t, int32(1), client.calls.Load())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApprove_TerminalAlertIsConflict(t *testing.T) {
	client := &fakeDecisionClient{}
	svc, mock := newTestAlertService(t, client, nil)

	rows := sqlmock.NewRows([]string{"id", "status"}).
		AddRow(1, models.AlertStatusApproved)
	mock.ExpectQuery("SELECT \\* FROM `alerts`").WillReturnRows(rows)

	alert, err := svc.Approve(context.Background(), 1, 42, "")

	assert.Nil(t, alert)
	assert.ErrorIs(t, err, ErrAlertAlreadyResolved)
	assert.Zero(t, client.calls.Load(), "终态预警不能转发上游")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApprove_AlertNotFound(t *testing.T) {
	svc, mock := newTestAlertService(t, &fakeDecisionClient{}, nil)

	mock.ExpectQuery("SELECT \\* FROM `alerts`").WillReturnError(gorm.ErrRecordNotFound)

	alert, err := svc.Approve(context.Background(), 99, 42, "")

	assert.Nil(t, alert)
	assert.ErrorIs(t, err, ErrAlertNotFound)
}

func TestApprove_UpstreamFailureLeavesStateUnchanged(t *testing.T) {
	upstreamErr := &UpstreamError{Endpoint: "http://upstream", Err: errors.New("connection refused")}
	client := &fakeDecisionClient{err: upstreamErr}
	notifier := &fakeNotifier{}
	svc, mock := newTestAlertService(t, client, notifier)

	mock.ExpectQuery("SELECT \\* FROM `alerts`").WillReturnRows(pendingAlertRows())

	alert, err := svc.Approve(context.Background(), 1, 42, "")

	assert.Nil(t, alert)
	var ue *UpstreamError
	assert.ErrorAs(t, err, &ue)
	assert.Zero(t, notifier.decisionEvents.Load())
	// 上游失败后不进入事务，本地状态保持pending
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApprove_ConcurrentDecisionRefused(t *testing.T) {
	client := &fakeDecisionClient{blockCh: make(chan struct{})}
	svc, mock := newTestAlertService(t, client, nil)

	mock.ExpectQuery("SELECT \\* FROM `alerts`").WillReturnRows(pendingAlertRows())
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `decisions`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE `alerts` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	firstDone := make(chan error, 1)
	go func() {
		_, err := svc.Approve(context.Background(), 1, 42, "")
		firstDone <- err
	}()

	// 等第一个请求进入上游调用并占住处理槽位
	require.Eventually(t, func() bool {
		return svc.IsProcessing(1)
	}, time.Second, 5*time.Millisecond)

	// 第二个请求立即被拒绝，不产生第二次上游调用
	_, err := svc.Approve(context.Background(), 1, 42, "")
	assert.ErrorIs(t, err, ErrDecisionInFlight)
	assert.Equal(t, int32(1), client.calls.Load())

	close(client.blockCh)
	require.NoError(t, <-firstDone)
	assert.False(t, svc.IsProcessing(1), "请求完成后必须释放槽位")
}

func TestApprove_LostRaceOnStatusGuard(t *testing.T) {
	client := &fakeDecisionClient{}
	svc, mock := newTestAlertService(t, client, nil)

	mock.ExpectQuery("SELECT \\* FROM `alerts`").WillReturnRows(pendingAlertRows())
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `decisions`").WillReturnResult(sqlmock.NewResult(1, 1))
	// 状态守卫未命中任何行，说明另一个写入已抢先落终态
	mock.ExpectExec("UPDATE `alerts` SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	alert, err := svc.Approve(context.Background(), 1, 42, "")

	assert.Nil(t, alert)
	assert.ErrorIs(t, err, ErrAlertAlreadyResolved)
	assert.NoError(t, mock.ExpectationsWereMet())
}
