package repository

import (
	"context"

	"adas_workorders/internal/domain/entities"
	"adas_workorders/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

const (
	defaultShopsTableName       = "shops"
	defaultTechniciansTableName = "technicians"
)

type shopItem struct {
	Name   string `dynamodbav:"name"`
	Region string `dynamodbav:"region"`
}

type technicianItem struct {
	Name    string `dynamodbav:"name"`
	Regions string `dynamodbav:"regions"`
	Active  bool   `dynamodbav:"active"`
}

// DirectoryDynamoRepository reads the shop -> region and technician -> regions
// lookup tables. Both are small, so they are scanned whole.
//
// Table requirements:
//   - shops: PK name (string)
//   - technicians: PK name (string)

type DirectoryDynamoRepository struct {
	ddb              *dynamodb.Client
	shopsTable       string
	techniciansTable string
}

var (
	_ interfaces.IShopDirectory       = (*DirectoryDynamoRepository)(nil)
	_ interfaces.ITechnicianDirectory = (*DirectoryDynamoRepository)(nil)
)

func NewDirectoryDynamoRepository(ddb *dynamodb.Client) *DirectoryDynamoRepository {
	return &DirectoryDynamoRepository{
		ddb:              ddb,
		shopsTable:       getenvDefault("SHOPS_TABLE", defaultShopsTableName),
		techniciansTable: getenvDefault("TECHNICIANS_TABLE", defaultTechniciansTableName),
	}
}

func (r *DirectoryDynamoRepository) ListShops(ctx context.Context) ([]entities.Shop, error) {
	var out []entities.Shop
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{TableName: aws.String(r.shopsTable)})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var items []shopItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, err
		}
		for _, it := range items {
			out = append(out, entities.Shop{Name: it.Name, Region: it.Region})
		}
	}
	return out, nil
}

func (r *DirectoryDynamoRepository) ListTechnicians(ctx context.Context) ([]entities.Technician, error) {
	var out []entities.Technician
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{TableName: aws.String(r.techniciansTable)})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var items []technicianItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return nil, err
		}
		for _, it := range items {
			out = append(out, entities.Technician{Name: it.Name, Regions: it.Regions, Active: it.Active})
		}
	}
	return out, nil
}
