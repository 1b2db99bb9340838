package grn

import (
	"context"
	"errors"
	"fmt"
	"time"

	"grn-console/internal/database"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// approvalDocument is the Mongo shape of an ApprovalRecord; amounts are stored as Decimal128
type approvalDocument struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty"`
	GRNNo           string               `bson:"grn_no"`
	PlannedDate     string               `bson:"planned_date"`
	GRNDate         string               `bson:"grn_date"`
	PartyName       string               `bson:"party_name"`
	PartyBillNo     string               `bson:"party_bill_no"`
	PartyBillAmount primitive.Decimal128 `bson:"party_bill_amount"`
	SendedBill      bool                 `bson:"sended_bill"`
	ApprovedByAdmin bool                 `bson:"approved_by_admin"`
	ApprovedByGM    bool                 `bson:"approved_by_gm"`
	CloseBill       bool                 `bson:"close_bill"`
	CreatedAt       time.Time            `bson:"created_at"`
	UpdatedAt       time.Time            `bson:"updated_at"`
}

func toDocument(rec *ApprovalRecord) (approvalDocument, error) {
	amount, err := primitive.ParseDecimal128(rec.PartyBillAmount.String())
	if err != nil {
		return approvalDocument{}, fmt.Errorf("encode party_bill_amount: %w", err)
	}
	return approvalDocument{
		GRNNo:           rec.GRNNo,
		PlannedDate:     rec.PlannedDate,
		GRNDate:         rec.GRNDate,
		PartyName:       rec.PartyName,
		PartyBillNo:     rec.PartyBillNo,
		PartyBillAmount: amount,
		SendedBill:      rec.SendedBill,
		ApprovedByAdmin: rec.ApprovedByAdmin,
		ApprovedByGM:    rec.ApprovedByGM,
		CloseBill:       rec.CloseBill,
		CreatedAt:       rec.CreatedAt,
		UpdatedAt:       rec.UpdatedAt,
	}, nil
}

func (d *approvalDocument) toRecord() (*ApprovalRecord, error) {
	amount, err := decimal.NewFromString(d.PartyBillAmount.String())
	if err != nil {
		return nil, fmt.Errorf("decode party_bill_amount for %s: %w", d.GRNNo, err)
	}
	return &ApprovalRecord{
		GRNNo:           d.GRNNo,
		PlannedDate:     d.PlannedDate,
		GRNDate:         d.GRNDate,
		PartyName:       d.PartyName,
		PartyBillNo:     d.PartyBillNo,
		PartyBillAmount: amount,
		SendedBill:      d.SendedBill,
		ApprovedByAdmin: d.ApprovedByAdmin,
		ApprovedByGM:    d.ApprovedByGM,
		CloseBill:       d.CloseBill,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}, nil
}

type MongoApprovalRepository struct {
	Collection *mongo.Collection
}

func NewMongoApprovalRepository(mongodb *database.MongodbDB) *MongoApprovalRepository {
	return &MongoApprovalRepository{
		Collection: mongodb.DB.Collection("grn_approvals"),
	}
}

// EnsureSchema creates the unique grn_no index that backs create-if-absent
func (r *MongoApprovalRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "grn_no", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_grn_no")},
		{Keys: bson.D{{Key: "created_at", Value: 1}}, Options: options.Index().SetName("created_at")},
	})
	return err
}

func (r *MongoApprovalRepository) Ping(ctx context.Context) error {
	return r.Collection.Database().Client().Ping(ctx, nil)
}

func (r *MongoApprovalRepository) Create(ctx context.Context, rec *ApprovalRecord) error {
	doc, err := toDocument(rec)
	if err != nil {
		return err
	}
	if _, err := r.Collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrRecordExists
		}
		return err
	}
	return nil
}

func (r *MongoApprovalRepository) Get(ctx context.Context, grnNo string) (*ApprovalRecord, error) {
	var doc approvalDocument
	err := r.Collection.FindOne(ctx, bson.M{"grn_no": grnNo}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return doc.toRecord()
}

func (r *MongoApprovalRepository) List(ctx context.Context) ([]ApprovalRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "grn_no", Value: 1}})
	cursor, err := r.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []approvalDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	records := make([]ApprovalRecord, 0, len(docs))
	for i := range docs {
		rec, err := docs[i].toRecord()
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, nil
}

func (r *MongoApprovalRepository) Patch(ctx context.Context, grnNo string, guard, set Flags, at time.Time) (*ApprovalRecord, error) {
	if err := validatePatch(guard, set); err != nil {
		return nil, err
	}

	filter, update := buildPatchUpdate(grnNo, guard, set, at)
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc approvalDocument
	err := r.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err == nil {
		return doc.toRecord()
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	n, err := r.Collection.CountDocuments(ctx, bson.M{"grn_no": grnNo})
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrRecordNotFound
	}
	return nil, ErrGuardFailed
}

// buildPatchUpdate puts the guard in the filter so the check and the write are one document operation
func buildPatchUpdate(grnNo string, guard, set Flags, at time.Time) (bson.M, bson.M) {
	filter := bson.M{"grn_no": grnNo}
	for field, v := range guard {
		filter[field] = v
	}
	fields := bson.M{"updated_at": at}
	for field, v := range set {
		fields[field] = v
	}
	return filter, bson.M{"$set": fields}
}
