package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"adas_workorders/internal/domain/entities"
	"adas_workorders/internal/domain/identifier"
	"adas_workorders/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultWorkOrdersTableName = "workorders"
	vinIndexName               = "vin-index"
	referenceIndexName         = "reference-index"
)

type workOrderItem struct {
	ID                    string   `dynamodbav:"id"`
	Version               int64    `dynamodbav:"version"`
	CreatedAt             string   `dynamodbav:"created_at"`
	UpdatedAt             string   `dynamodbav:"updated_at"`
	ShopName              string   `dynamodbav:"shop_name"`
	ReferenceNumber       string   `dynamodbav:"reference_number,omitempty"`
	VIN                   string   `dynamodbav:"vin,omitempty"`
	VINValid              bool     `dynamodbav:"vin_valid"`
	VehicleDescription    string   `dynamodbav:"vehicle_description"`
	Status                string   `dynamodbav:"status"`
	ScheduledDate         string   `dynamodbav:"scheduled_date"`
	ScheduledTime         string   `dynamodbav:"scheduled_time"`
	Technician            string   `dynamodbav:"technician"`
	RequiredCalibrations  string   `dynamodbav:"required_calibrations"`
	CompletedCalibrations string   `dynamodbav:"completed_calibrations"`
	DTCs                  string   `dynamodbav:"dtcs"`
	EstimateDocument      string   `dynamodbav:"estimate_document"`
	PreScanDocument       string   `dynamodbav:"pre_scan_document"`
	CalibrationReport     string   `dynamodbav:"calibration_report"`
	PostScanDocument      string   `dynamodbav:"post_scan_document"`
	InvoiceDocument       string   `dynamodbav:"invoice_document"`
	InvoiceNumber         string   `dynamodbav:"invoice_number"`
	InvoiceAmount         string   `dynamodbav:"invoice_amount"`
	InvoiceDate           string   `dynamodbav:"invoice_date"`
	ShortNotes            string   `dynamodbav:"short_notes"`
	FlowHistory           string   `dynamodbav:"flow_history"`
	SupplementalDocuments string   `dynamodbav:"supplemental_documents"`
	JobStartedAt          string   `dynamodbav:"job_started_at"`
	JobEndedAt            string   `dynamodbav:"job_ended_at"`
	NotificationFlags     []string `dynamodbav:"notification_flags,omitempty"`
}

// WorkOrderDynamoRepository persists WorkOrder entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI vin-index: vin (string); sparse, items without a VIN are not indexed
//   - GSI reference-index: reference_number (string)
//
// Every write replaces the whole item and is conditioned on the version the
// caller read.

type WorkOrderDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IWorkOrderRepository = (*WorkOrderDynamoRepository)(nil)

func NewWorkOrderDynamoRepository(ddb *dynamodb.Client) *WorkOrderDynamoRepository {
	return &WorkOrderDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("WORKORDERS_TABLE", defaultWorkOrdersTableName),
	}
}

func (r *WorkOrderDynamoRepository) FindByVIN(ctx context.Context, vin string) (entities.WorkOrder, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(vinIndexName),
		KeyConditionExpression: aws.String("#vin = :vin"),
		ExpressionAttributeNames: map[string]string{
			"#vin": "vin",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":vin": &types.AttributeValueMemberS{Value: identifier.NormalizeVIN(vin)},
		},
	})
	if err != nil {
		return entities.WorkOrder{}, err
	}
	return r.oldest(ctx, out.Items)
}

// FindByReference tries the exact-reference index first and falls back to a
// projected scan for the suffix-stripped and numeric-prefix tiers.
func (r *WorkOrderDynamoRepository) FindByReference(ctx context.Context, ref string) (entities.WorkOrder, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return entities.WorkOrder{}, nil
	}

	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(referenceIndexName),
		KeyConditionExpression: aws.String("#ref = :ref"),
		ExpressionAttributeNames: map[string]string{
			"#ref": "reference_number",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":ref": &types.AttributeValueMemberS{Value: ref},
		},
	})
	if err != nil {
		return entities.WorkOrder{}, err
	}
	if len(out.Items) > 0 {
		return r.oldest(ctx, out.Items)
	}

	candidates, err := r.scanReferences(ctx)
	if err != nil {
		return entities.WorkOrder{}, err
	}
	id, _ := pickByReference(candidates, ref)
	if id == "" {
		return entities.WorkOrder{}, nil
	}
	return r.ReadFull(ctx, id)
}

func (r *WorkOrderDynamoRepository) scanReferences(ctx context.Context) ([]referenceCandidate, error) {
	var candidates []referenceCandidate
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName:            aws.String(r.tableName),
		ProjectionExpression: aws.String("#id, #ref, #created"),
		ExpressionAttributeNames: map[string]string{
			"#id":      "id",
			"#ref":     "reference_number",
			"#created": "created_at",
		},
	})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			var it workOrderItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			if it.ReferenceNumber == "" {
				continue
			}
			candidates = append(candidates, referenceCandidate{
				ID:        it.ID,
				Reference: it.ReferenceNumber,
				CreatedAt: parseTime(it.CreatedAt),
			})
		}
	}
	return candidates, nil
}

// oldest resolves index hits (which may be keys-only projections) to the
// earliest created full record.
func (r *WorkOrderDynamoRepository) oldest(ctx context.Context, items []map[string]types.AttributeValue) (entities.WorkOrder, error) {
	if len(items) == 0 {
		return entities.WorkOrder{}, nil
	}
	var best entities.WorkOrder
	for _, raw := range items {
		var it workOrderItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return entities.WorkOrder{}, err
		}
		wo, err := r.ReadFull(ctx, it.ID)
		if err != nil {
			return entities.WorkOrder{}, err
		}
		if !wo.Exists() {
			continue
		}
		if !best.Exists() || wo.CreatedAt.Before(best.CreatedAt) ||
			(wo.CreatedAt.Equal(best.CreatedAt) && wo.ID < best.ID) {
			best = wo
		}
	}
	return best, nil
}

func (r *WorkOrderDynamoRepository) Insert(ctx context.Context, wo entities.WorkOrder) (entities.WorkOrder, error) {
	if wo.Version == 0 {
		wo.Version = 1
	}
	av, err := attributevalue.MarshalMap(toWorkOrderItem(wo))
	if err != nil {
		return entities.WorkOrder{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.WorkOrder{}, fmt.Errorf("work order %s already exists: %w", wo.ID, interfaces.ErrVersionConflict)
		}
		return entities.WorkOrder{}, err
	}
	return wo, nil
}

func (r *WorkOrderDynamoRepository) ReadFull(ctx context.Context, id string) (entities.WorkOrder, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.WorkOrder{}, err
	}
	if len(out.Item) == 0 {
		return entities.WorkOrder{}, nil
	}

	var it workOrderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.WorkOrder{}, err
	}
	return fromWorkOrderItem(it), nil
}

// WriteFull replaces the item when the stored version still equals wo.Version
// and returns the record with its new version.
func (r *WorkOrderDynamoRepository) WriteFull(ctx context.Context, wo entities.WorkOrder) (entities.WorkOrder, error) {
	expected := wo.Version
	wo.Version = expected + 1
	av, err := attributevalue.MarshalMap(toWorkOrderItem(wo))
	if err != nil {
		return entities.WorkOrder{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id) AND #version = :expected"),
		ExpressionAttributeNames: map[string]string{
			"#id":      "id",
			"#version": "version",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: fmt.Sprint(expected)},
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.WorkOrder{}, interfaces.ErrVersionConflict
		}
		return entities.WorkOrder{}, err
	}
	return wo, nil
}

func toWorkOrderItem(wo entities.WorkOrder) workOrderItem {
	return workOrderItem{
		ID:                    wo.ID,
		Version:               wo.Version,
		CreatedAt:             formatTime(wo.CreatedAt),
		UpdatedAt:             formatTime(wo.UpdatedAt),
		ShopName:              wo.ShopName,
		ReferenceNumber:       wo.ReferenceNumber,
		VIN:                   wo.VIN,
		VINValid:              wo.VINValid,
		VehicleDescription:    wo.VehicleDescription,
		Status:                string(wo.Status),
		ScheduledDate:         wo.ScheduledDate,
		ScheduledTime:         wo.ScheduledTime,
		Technician:            wo.Technician,
		RequiredCalibrations:  wo.RequiredCalibrations,
		CompletedCalibrations: wo.CompletedCalibrations,
		DTCs:                  wo.DTCs.String(),
		EstimateDocument:      wo.Documents.Estimate,
		PreScanDocument:       wo.Documents.PreScan,
		CalibrationReport:     wo.Documents.CalibrationReport,
		PostScanDocument:      wo.Documents.PostScan,
		InvoiceDocument:       wo.Documents.Invoice,
		InvoiceNumber:         wo.Invoice.Number,
		InvoiceAmount:         wo.Invoice.Amount,
		InvoiceDate:           wo.Invoice.Date,
		ShortNotes:            wo.ShortNotes,
		FlowHistory:           wo.FlowHistory,
		SupplementalDocuments: wo.SupplementalDocuments,
		JobStartedAt:          formatTimePtr(wo.JobStartedAt),
		JobEndedAt:            formatTimePtr(wo.JobEndedAt),
		NotificationFlags:     wo.NotificationFlags,
	}
}

func fromWorkOrderItem(it workOrderItem) entities.WorkOrder {
	return entities.WorkOrder{
		ID:                    it.ID,
		Version:               it.Version,
		CreatedAt:             parseTime(it.CreatedAt),
		UpdatedAt:             parseTime(it.UpdatedAt),
		ShopName:              it.ShopName,
		ReferenceNumber:       it.ReferenceNumber,
		VIN:                   it.VIN,
		VINValid:              it.VINValid,
		VehicleDescription:    it.VehicleDescription,
		Status:                entities.Status(it.Status),
		ScheduledDate:         it.ScheduledDate,
		ScheduledTime:         it.ScheduledTime,
		Technician:            it.Technician,
		RequiredCalibrations:  it.RequiredCalibrations,
		CompletedCalibrations: it.CompletedCalibrations,
		DTCs:                  entities.ParseDTCSet(it.DTCs),
		Documents: entities.Documents{
			Estimate:          it.EstimateDocument,
			PreScan:           it.PreScanDocument,
			CalibrationReport: it.CalibrationReport,
			PostScan:          it.PostScanDocument,
			Invoice:           it.InvoiceDocument,
		},
		SupplementalDocuments: it.SupplementalDocuments,
		Invoice: entities.Invoice{
			Number: it.InvoiceNumber,
			Amount: it.InvoiceAmount,
			Date:   it.InvoiceDate,
		},
		ShortNotes:        it.ShortNotes,
		FlowHistory:       it.FlowHistory,
		JobStartedAt:      parseTimePtr(it.JobStartedAt),
		JobEndedAt:        parseTimePtr(it.JobEndedAt),
		NotificationFlags: it.NotificationFlags,
	}
}
