package job

import (
	"context"
	"testing"
	"time"

	"bitbucket.org/Amartha/go-accounting-landing/internal/common/flag"
	xlog "bitbucket.org/Amartha/go-accounting-landing/internal/common/log"
	"bitbucket.org/Amartha/go-accounting-landing/internal/models"
	"bitbucket.org/Amartha/go-accounting-landing/internal/services/mock"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestJob_Start(t *testing.T) {
	tests := []struct {
		name    string
		flag    flag.Job
		doMock  func(bs *mock.MockBatchService)
		wantErr error
		wantLog string
	}{
		{
			name: "runs the job with the parsed date",
			flag: flag.Job{JobName: "hr-landing", Version: "v1", Date: "2024-03-01", FileName: "in/hr.csv"},
			doMock: func(bs *mock.MockBatchService) {
				bs.EXPECT().
					Run(gomock.Any(), gomock.Any()).
					DoAndReturn(func(ctx context.Context, req models.BatchRequest) (models.BatchResult, error) {
						assert.NotEmpty(t, xlog.CorrelationID(ctx))
						assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), req.PayrollPeriod)
						return models.BatchResult{}, nil
					})
			},
			wantLog: "success",
		},
		{
			name:    "unknown job",
			flag:    flag.Job{JobName: "ledger-landing", Version: "v1"},
			wantErr: ErrInvalidJob,
			wantLog: "fail",
		},
		{
			name:    "unknown version",
			flag:    flag.Job{JobName: "sales-landing", Version: "v9"},
			wantErr: ErrInvalidJob,
			wantLog: "fail",
		},
		{
			name: "job failure",
			flag: flag.Job{JobName: "sales-landing", Version: "v1", FileName: "in/sales.csv"},
			doMock: func(bs *mock.MockBatchService) {
				bs.EXPECT().Run(gomock.Any(), gomock.Any()).Return(models.BatchResult{}, assert.AnError)
			},
			wantErr: assert.AnError,
			wantLog: "fail",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.InfoLevel)
			xlog.InitForTest(core)

			mockCtrl := gomock.NewController(t)
			bs := mock.NewMockBatchService(mockCtrl)
			if tt.doMock != nil {
				tt.doMock(bs)
			}

			err := New(bs, mock.NewMockOrchestratorService(mockCtrl)).Start(context.Background(), tt.flag)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			jobLogs := logs.FilterMessage("[JOB]").All()
			if assert.Len(t, jobLogs, 1) {
				assert.Equal(t, tt.wantLog, jobLogs[0].ContextMap()["status"])
			}
		})
	}
}

func TestJob_Start_InvalidDate(t *testing.T) {
	xlog.InitForTest(zap.NewNop().Core())

	mockCtrl := gomock.NewController(t)
	j := New(mock.NewMockBatchService(mockCtrl), mock.NewMockOrchestratorService(mockCtrl))

	err := j.Start(context.Background(), flag.Job{JobName: "sales-landing", Version: "v1", Date: "01/03/2024"})
	assert.Error(t, err)
}
