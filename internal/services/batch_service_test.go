package services_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"bitbucket.org/Amartha/go-accounting-landing/internal/common"
	"bitbucket.org/Amartha/go-accounting-landing/internal/config"
	"bitbucket.org/Amartha/go-accounting-landing/internal/models"
	"bitbucket.org/Amartha/go-accounting-landing/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"
)

const salesCSV = `txn_type,source_txn_id,source_line_id,event_timestamp,invoice_date,currency_code,customer_code,product_code,product_name,order_id,invoice_id,quantity_shipped,net_amount
INVOICE,S001,1,2024-03-15 09:30:00,2024-03-15,JPY,cust01,prd-a,Widget,ORD001,INV001,2,1000
INVOICE,S002,1,2024-03-15 09:31:00,2024-03-15,JPY,cust02,prd-b,Gadget,ORD002,INV002,1,0
PMT,S003,1,2024-03-15 09:32:00,2024-03-15,JPY,cust01,,,ORD001,INV001,,1000
`

const inventoryCSV = `movement_type,movement_id,movement_line_id,movement_timestamp,currency_code,inventory_org,subinventory_code,location_code,item_code,item_description,source_doc_type,source_doc_id,quantity,uom_code,cost_method,std_cost,avg_cost,unit_cost
RCV,MV001,L1,2024-03-15 09:00:00,JPY,ORG001,MAIN,A-01,itm-100,Steel bolt,PO,PO1,10,EA,STD,500,480,500
ISS,MV002,L1,2024-03-15 09:05:00,JPY,ORG001,MAIN,A-01,itm-100,Steel bolt,WO,WO1,2,EA,STD,500,480,500
RCV,MV003,L1,2024-03-15 09:10:00,JPY,ORG001,MAIN,A-01,itm-101,Steel nut,PO,PO2,5,EA,STD,100,100,100
RCV,MV004,L1,2024-03-15 09:20:00,JPY,ORG001,MAIN,A-01,itm-102,Washer,PO,PO3,5,EA,STD,10,10,10
`

const employeeCSV = `employee_id,employee_number,first_name,last_name,dept_code,cost_center_code,payroll_group,employment_type
E001,EMP001,Taro,Yamada,D100,CC10,MONTHLY,REGULAR
E002,EMP002,Hanako,Sato,D200,CC20,HOURLY,PART_TIME
`

func salesRequest() models.BatchRequest {
	return models.BatchRequest{
		SourceSystem: models.SourceSystemSales,
		BatchID:      "SALE_B1",
		InputPath:    "in/sales.csv",
	}
}

func intPtr(i int) *int { return &i }

func (h testServiceHelper) expectReader(path, content string) {
	h.mockStorage.EXPECT().
		NewReader(gomock.Any(), models.NewCloudStoragePayload(path)).
		Return(readCloser(content), nil)
}

func (h testServiceHelper) expectWriter(path string) *bufferWriteCloser {
	w := &bufferWriteCloser{}
	h.mockStorage.EXPECT().
		NewWriter(gomock.Any(), models.NewCloudStoragePayload(path)).
		Return(w, nil)
	return w
}

func (h testServiceHelper) expectSummary(status string) {
	h.mockCacheRepository.EXPECT().
		SetBatchSummary(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, summary models.BatchSummary, _ any) error {
			assert.Equal(h.mockCtrl.T, status, summary.Status)
			return nil
		})
}

func (h testServiceHelper) expectAtomic() {
	h.mockSQLRepository.EXPECT().
		Atomic(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, steps func(context.Context, repositories.SQLRepository) error) error {
			return steps(ctx, h.mockSQLRepository)
		})
}

func TestBatch_Run_Sales(t *testing.T) {
	h := serviceTestHelper(t, func(conf *config.Config) {
		conf.Sinks.SQLEnabled = true
		conf.Sinks.KafkaEnabled = true
	})

	h.expectReader("in/sales.csv", salesCSV)
	w := h.expectWriter("out/" + models.LandingFileNameFor(models.SourceSystemSales))
	h.expectAtomic()
	h.mockLandingRepository.EXPECT().
		BulkInsert(gomock.Any(), gomock.Len(3)).
		Return(int64(3), nil)
	h.mockLandingPublisher.EXPECT().
		PublishBatch(gomock.Any(), gomock.Len(2), gomock.Any()).
		DoAndReturn(func(_ context.Context, messages []any, keyFn func(int) string) error {
			assert.Equal(t, "S001", keyFn(0))
			assert.Equal(t, "S003", keyFn(1))
			return nil
		})
	h.expectSummary(models.BatchStatusCompleted)

	result, err := h.batchService.Run(context.Background(), salesRequest())
	require.NoError(t, err)

	assert.Equal(t, "SALE_B1", result.BatchID)
	assert.Equal(t, 3, result.SourceRecords)
	assert.Equal(t, 1, result.ErrorRecords)
	assert.Len(t, result.LandingRecords, 3)
	assert.Len(t, result.ReadyRecords(), 2)
	assert.Equal(t, "out/"+models.LandingFileNameFor(models.SourceSystemSales), result.OutputPath)
	assert.Empty(t, result.ErrorReportURL)
	assert.False(t, result.FinishedAt.Before(result.StartedAt))

	// output keeps the input order
	assert.Equal(t, "S001", result.LandingRecords[0].SourceDocID)
	assert.Equal(t, "S002", result.LandingRecords[1].SourceDocID)
	assert.Equal(t, "S003", result.LandingRecords[2].SourceDocID)
	assert.Equal(t, models.StatusError, result.LandingRecords[1].StatusCode)

	assert.True(t, w.closed)
	lines := csvLines(w.String())
	require.Len(t, lines, 4)
	assert.Equal(t, strings.Join(models.LandingColumns, ","), lines[0])
}

func TestBatch_Run_GeneratedBatchID(t *testing.T) {
	h := serviceTestHelper(t)

	req := salesRequest()
	req.BatchID = "  "
	req.OutputPath = "custom/sales_landing.csv"

	h.expectReader("in/sales.csv", salesCSV)
	h.expectWriter("custom/sales_landing.csv")
	h.expectSummary(models.BatchStatusCompleted)

	result, err := h.batchService.Run(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "SALE_20240315_100000", result.BatchID)
	assert.Equal(t, "custom/sales_landing.csv", result.OutputPath)
	for _, rec := range result.LandingRecords {
		assert.Equal(t, "SALE_20240315_100000", rec.BatchID)
	}
}

func TestBatch_Run_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  models.BatchRequest
	}{
		{
			name: "missing input path",
			req:  models.BatchRequest{SourceSystem: models.SourceSystemSales},
		},
		{
			name: "unknown source system",
			req:  models.BatchRequest{SourceSystem: "AP", InputPath: "in/ap.csv"},
		},
		{
			name: "unknown payroll mode",
			req:  models.BatchRequest{SourceSystem: models.SourceSystemHR, InputPath: "in/hr.csv", PayrollMode: "api"},
		},
		{
			name: "negative limit",
			req:  models.BatchRequest{SourceSystem: models.SourceSystemSales, InputPath: "in/sales.csv", Limit: -1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := serviceTestHelper(t)

			_, err := h.batchService.Run(context.Background(), tt.req)
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}
}

func TestBatch_Run_ThresholdExceeded(t *testing.T) {
	h := serviceTestHelper(t)

	csv := salesCSV + "INVOICE,S004,1,2024-03-15 09:33:00,2024-03-15,JPY,cust03,prd-c,Thing,ORD004,INV004,1,0\n"

	req := salesRequest()
	req.Threshold = intPtr(1)
	req.Workers = 1

	h.expectReader("in/sales.csv", csv)
	h.expectSummary(models.BatchStatusAborted)

	result, err := h.batchService.Run(context.Background(), req)
	assert.ErrorIs(t, err, common.ErrErrorThresholdExceeded)
	assert.Equal(t, 2, result.ErrorRecords)
	assert.Empty(t, result.LandingRecords)
	assert.Empty(t, result.OutputPath)
}

func TestBatch_Run_ConfiguredThreshold(t *testing.T) {
	h := serviceTestHelper(t, func(conf *config.Config) {
		conf.Landing.Sales.ErrorThreshold = 1
		conf.Landing.ThresholdComparator = config.ThresholdComparatorGreaterThanOrEqual
	})

	h.expectReader("in/sales.csv", salesCSV)
	h.expectSummary(models.BatchStatusAborted)

	_, err := h.batchService.Run(context.Background(), salesRequest())
	assert.ErrorIs(t, err, common.ErrErrorThresholdExceeded)
}

func TestBatch_Run_BatchLock(t *testing.T) {
	t.Run("batch already running", func(t *testing.T) {
		h := serviceTestHelper(t, func(conf *config.Config) {
			conf.Sinks.BatchLockEnabled = true
		})

		h.mockCacheRepository.EXPECT().
			AcquireBatchLock(gomock.Any(), "SALE_B1", gomock.Any()).
			Return(common.ErrBatchAlreadyRunning)

		_, err := h.batchService.Run(context.Background(), salesRequest())
		assert.ErrorIs(t, err, common.ErrBatchAlreadyRunning)
	})

	t.Run("lock is released after the batch", func(t *testing.T) {
		h := serviceTestHelper(t, func(conf *config.Config) {
			conf.Sinks.BatchLockEnabled = true
			conf.Landing.BatchLockTTL = 0
		})

		gomock.InOrder(
			h.mockCacheRepository.EXPECT().AcquireBatchLock(gomock.Any(), "SALE_B1", gomock.Any()).Return(nil),
			h.mockCacheRepository.EXPECT().SetBatchSummary(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down")),
			h.mockCacheRepository.EXPECT().ReleaseBatchLock(gomock.Any(), "SALE_B1").Return(nil),
		)
		h.expectReader("in/sales.csv", salesCSV)
		h.expectWriter("out/" + models.LandingFileNameFor(models.SourceSystemSales))

		_, err := h.batchService.Run(context.Background(), salesRequest())
		assert.NoError(t, err)
	})
}

func TestBatch_Run_ReaderError(t *testing.T) {
	h := serviceTestHelper(t)

	h.mockStorage.EXPECT().
		NewReader(gomock.Any(), gomock.Any()).
		Return(nil, common.ErrDataNotFound)
	h.expectSummary(models.BatchStatusAborted)

	_, err := h.batchService.Run(context.Background(), salesRequest())
	assert.ErrorIs(t, err, common.ErrDataNotFound)
}

func TestBatch_Run_SQLSink(t *testing.T) {
	errDB := errors.New("connection refused")

	tests := []struct {
		name    string
		doMock  func(h testServiceHelper)
		wantErr error
	}{
		{
			name: "failed insert is parked in the dlq",
			doMock: func(h testServiceHelper) {
				h.mockSQLRepository.EXPECT().Atomic(gomock.Any(), gomock.Any()).Return(errDB).Times(2)
				h.mockDLQ.EXPECT().
					Publish(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, msg models.FailedMessage) error {
						assert.Equal(h.mockCtrl.T, "SQL", msg.Sink)
						assert.Equal(h.mockCtrl.T, "SALE_B1", msg.BatchID)
						assert.ErrorIs(h.mockCtrl.T, msg.CauseError, errDB)
						assert.Len(h.mockCtrl.T, csvLines(string(msg.Payload)), 4)
						return nil
					})
			},
		},
		{
			name: "dlq failure is returned",
			doMock: func(h testServiceHelper) {
				h.mockSQLRepository.EXPECT().Atomic(gomock.Any(), gomock.Any()).Return(errDB).Times(2)
				h.mockDLQ.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("bucket unavailable"))
			},
			wantErr: errDB,
		},
		{
			name: "already loaded batch is not retried",
			doMock: func(h testServiceHelper) {
				h.mockSQLRepository.EXPECT().Atomic(gomock.Any(), gomock.Any()).Return(common.ErrBatchAlreadyLoaded).Times(1)
			},
			wantErr: common.ErrBatchAlreadyLoaded,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := serviceTestHelper(t, func(conf *config.Config) {
				conf.Sinks.SQLEnabled = true
			})

			h.expectReader("in/sales.csv", salesCSV)
			h.expectWriter("out/" + models.LandingFileNameFor(models.SourceSystemSales))
			if tt.wantErr != nil {
				h.expectSummary(models.BatchStatusAborted)
			} else {
				h.expectSummary(models.BatchStatusCompleted)
			}
			tt.doMock(h)

			_, err := h.batchService.Run(context.Background(), salesRequest())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestBatch_Run_KafkaSinkParked(t *testing.T) {
	h := serviceTestHelper(t, func(conf *config.Config) {
		conf.Sinks.KafkaEnabled = true
	})

	h.expectReader("in/sales.csv", salesCSV)
	h.expectWriter("out/" + models.LandingFileNameFor(models.SourceSystemSales))
	h.mockLandingPublisher.EXPECT().
		PublishBatch(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("broker down")).
		Times(2)
	h.mockDLQ.EXPECT().
		Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg models.FailedMessage) error {
			assert.Equal(t, "KAFKA", msg.Sink)
			// header and the two READY records
			assert.Len(t, csvLines(string(msg.Payload)), 3)
			return nil
		})
	h.expectSummary(models.BatchStatusCompleted)

	_, err := h.batchService.Run(context.Background(), salesRequest())
	assert.NoError(t, err)
}

func TestBatch_Run_InventoryMovementFilter(t *testing.T) {
	h := serviceTestHelper(t, func(conf *config.Config) {
		conf.Landing.Inventory.MovementTypes = []string{"ISS"}
	})

	req := models.BatchRequest{
		SourceSystem:  models.SourceSystemInventory,
		BatchID:       "INV_B1",
		InputPath:     "in/inventory.csv",
		MovementTypes: []string{" rcv "},
		Limit:         2,
	}

	h.expectReader("in/inventory.csv", inventoryCSV)
	h.expectWriter("out/" + models.LandingFileNameFor(models.SourceSystemInventory))
	h.expectSummary(models.BatchStatusCompleted)

	result, err := h.batchService.Run(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 2, result.SourceRecords)
	assert.Equal(t, 1, result.SkippedRecords)
	require.NotEmpty(t, result.LandingRecords)
	for _, rec := range result.LandingRecords {
		assert.Equal(t, models.SourceSystemInventory, rec.SourceSystem)
		assert.NotEqual(t, "MV002", rec.SourceDocID)
		assert.NotEqual(t, "MV004", rec.SourceDocID)
	}
}

func TestBatch_Run_HRFabricatedPayroll(t *testing.T) {
	h := serviceTestHelper(t)

	req := models.BatchRequest{
		SourceSystem:  models.SourceSystemHR,
		BatchID:       "HR_B1",
		InputPath:     "in/employees.csv",
		PayrollPeriod: testNow,
	}

	h.expectReader("in/employees.csv", employeeCSV)
	h.expectWriter("out/" + models.LandingFileNameFor(models.SourceSystemHR))
	h.expectSummary(models.BatchStatusCompleted)

	result, err := h.batchService.Run(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 2, result.SourceRecords)
	assert.Zero(t, result.ErrorRecords)
	// regular: salary, three allowances, six deductions and the payable
	// part time: salary, transport, tax and the payable
	assert.Len(t, result.LandingRecords, 15)

	payables := map[string]string{}
	for _, rec := range result.LandingRecords {
		assert.Equal(t, models.StatusReady, rec.StatusCode, rec.ErrorMessage)
		if rec.SourceLineID == "PAYABLE" {
			payables[rec.Reference1] = rec.EnteredCr.String()
		}
	}
	assert.Equal(t, map[string]string{"EMP001": "252000", "EMP002": "152000"}, payables)
}

func TestBatch_Run_HRFilePayroll(t *testing.T) {
	h := serviceTestHelper(t)

	req := models.BatchRequest{
		SourceSystem: models.SourceSystemHR,
		BatchID:      "HR_B2",
		InputPath:    "in/employees.csv",
		PayrollMode:  config.PayrollModeFile,
		PayrollPath:  "in/payroll.csv",
	}

	h.expectReader("in/employees.csv", employeeCSV)
	h.expectReader("in/payroll.csv", payrollCSV)
	h.expectWriter("out/" + models.LandingFileNameFor(models.SourceSystemHR))
	h.expectSummary(models.BatchStatusCompleted)

	result, err := h.batchService.Run(context.Background(), req)
	require.NoError(t, err)

	// E002 has no payroll row
	assert.Equal(t, 1, result.SourceRecords)
	assert.Equal(t, 1, result.SkippedRecords)
	// salary, housing, tax and the payable
	assert.Len(t, result.LandingRecords, 4)
}

func TestBatch_Run_ErrorReport(t *testing.T) {
	h := serviceTestHelper(t, func(conf *config.Config) {
		conf.Sinks.ErrorReportEnabled = true
	})

	report := models.CloudStoragePayload{Path: "error-data", Filename: "landing_errors_SALE_B1.xlsx"}

	h.expectReader("in/sales.csv", salesCSV)
	h.expectWriter("out/" + models.LandingFileNameFor(models.SourceSystemSales))
	h.mockStorage.EXPECT().ErrorDataPayload("landing_errors_SALE_B1.xlsx").Return(report)
	reportWriter := &bufferWriteCloser{}
	h.mockStorage.EXPECT().NewWriter(gomock.Any(), report).Return(reportWriter, nil)
	h.expectSummary(models.BatchStatusCompleted)

	result, err := h.batchService.Run(context.Background(), salesRequest())
	require.NoError(t, err)
	assert.Equal(t, "error-data/landing_errors_SALE_B1.xlsx", result.ErrorReportURL)

	f, err := excelize.OpenReader(bytes.NewReader(reportWriter.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Errors")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "batch_id", rows[0][0])
	assert.Equal(t, "SALE_B1", rows[1][0])
	assert.Equal(t, "S002", rows[1][3])
}

func TestBatch_Run_ErrorReportFailureIsNotFatal(t *testing.T) {
	h := serviceTestHelper(t, func(conf *config.Config) {
		conf.Sinks.ErrorReportEnabled = true
	})

	report := models.CloudStoragePayload{Path: "error-data", Filename: "landing_errors_SALE_B1.xlsx"}

	h.expectReader("in/sales.csv", salesCSV)
	h.expectWriter("out/" + models.LandingFileNameFor(models.SourceSystemSales))
	h.mockStorage.EXPECT().ErrorDataPayload(gomock.Any()).Return(report)
	h.mockStorage.EXPECT().NewWriter(gomock.Any(), report).Return(nil, errors.New("permission denied"))
	h.expectSummary(models.BatchStatusCompleted)

	result, err := h.batchService.Run(context.Background(), salesRequest())
	require.NoError(t, err)
	assert.Empty(t, result.ErrorReportURL)
}

func TestBatch_TransformRecords(t *testing.T) {
	h := serviceTestHelper(t)

	records := []models.SourceRecord{
		{
			"txn_type": "INVOICE", "source_txn_id": "S001", "source_line_id": "1",
			"invoice_date": "2024-03-15", "currency_code": "JPY", "net_amount": "1000",
		},
		{
			"txn_type": "INVOICE", "source_txn_id": "S002", "source_line_id": "1",
			"invoice_date": "2024-03-15", "currency_code": "JPY", "net_amount": "0",
		},
	}

	result, err := h.batchService.TransformRecords(context.Background(), models.SourceSystemSales, "", records)
	require.NoError(t, err)

	assert.Equal(t, "SALE_20240315_100000", result.BatchID)
	assert.Equal(t, 2, result.SourceRecords)
	assert.Equal(t, 1, result.ErrorRecords)
	require.Len(t, result.LandingRecords, 2)
	assert.Equal(t, models.StatusReady, result.LandingRecords[0].StatusCode)
	assert.Equal(t, models.StatusError, result.LandingRecords[1].StatusCode)
	assert.False(t, result.FinishedAt.IsZero())
}

func TestBatch_TransformRecords_UnknownSystem(t *testing.T) {
	h := serviceTestHelper(t)

	_, err := h.batchService.TransformRecords(context.Background(), "AP", "B1", nil)
	assert.Error(t, err)
}

func TestBatch_GetBatchSummary(t *testing.T) {
	tests := []struct {
		name    string
		doMock  func(h testServiceHelper)
		want    models.BatchSummary
		wantErr error
	}{
		{
			name: "success",
			doMock: func(h testServiceHelper) {
				h.mockCacheRepository.EXPECT().
					GetBatchSummary(gomock.Any(), "SALE_B1").
					Return(models.BatchSummary{BatchID: "SALE_B1", Status: models.BatchStatusCompleted}, nil)
			},
			want: models.BatchSummary{BatchID: "SALE_B1", Status: models.BatchStatusCompleted},
		},
		{
			name: "not found",
			doMock: func(h testServiceHelper) {
				h.mockCacheRepository.EXPECT().
					GetBatchSummary(gomock.Any(), "SALE_B1").
					Return(models.BatchSummary{}, common.ErrDataNotFound)
			},
			wantErr: common.ErrDataNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := serviceTestHelper(t)
			tt.doMock(h)

			got, err := h.batchService.GetBatchSummary(context.Background(), "SALE_B1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBatch_ListErrorCodes(t *testing.T) {
	h := serviceTestHelper(t)

	got := h.batchService.ListErrorCodes(context.Background())
	require.Len(t, got, len(config.ErrorCatalog))

	for i, code := range got {
		assert.Equal(t, "errorCode", code.Kind)
		assert.NotEmpty(t, code.Message)
		if i > 0 {
			assert.Less(t, got[i-1].Code, code.Code)
		}
		if config.WarningCodes[config.ErrorCode(code.Code)] {
			assert.Equal(t, "WARNING", code.Severity)
		} else {
			assert.Equal(t, "ERROR", code.Severity)
		}
	}
}
