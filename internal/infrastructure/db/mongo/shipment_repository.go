package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hiptrack/shipment-tracker/internal/core/domain"
	"github.com/hiptrack/shipment-tracker/internal/core/ports"
)

const collectionShipments = "shipments"

// caseInsensitive matches codes regardless of letter case. Codes are stored
// uppercase, but lookups must tolerate whatever the customer typed.
var caseInsensitive = options.Collation{Locale: "en", Strength: 2}

type ShipmentRepository struct {
	col *mongo.Collection
}

func NewShipmentRepository(db *mongo.Database) *ShipmentRepository {
	return &ShipmentRepository{col: db.Collection(collectionShipments)}
}

// shipmentDoc is the stored shape. Products is kept raw so a document with a
// malformed cargo list still decodes; the list then falls back to empty.
type shipmentDoc struct {
	ID   primitive.ObjectID `bson:"_id,omitempty"`
	Code string             `bson:"code"`
	Name string             `bson:"name"`

	Origin  *domain.Coordinates `bson:"origin,omitempty"`
	Current *domain.Coordinates `bson:"current,omitempty"`
	Dest    *domain.Coordinates `bson:"dest,omitempty"`

	EstimatedHours float64 `bson:"estimated_hours"`
	Progress       float64 `bson:"progress"`
	Status         string  `bson:"status"`

	Products bson.RawValue `bson:"products,omitempty"`

	Shipper  domain.Party `bson:"shipper"`
	Receiver domain.Party `bson:"receiver"`

	Agency       string `bson:"agency,omitempty"`
	ShipmentType string `bson:"shipment_type"`
	ShipmentMode string `bson:"shipment_mode"`
	PaymentMode  string `bson:"payment_mode"`
	CarrierRef   string `bson:"carrier_ref"`
	Location     string `bson:"location,omitempty"`
	AdminComment string `bson:"admin_comment,omitempty"`

	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (d *shipmentDoc) toDomain() *domain.Shipment {
	return &domain.Shipment{
		ID:             d.ID.Hex(),
		Code:           d.Code,
		Name:           d.Name,
		Origin:         d.Origin,
		Current:        d.Current,
		Dest:           d.Dest,
		EstimatedHours: d.EstimatedHours,
		Progress:       d.Progress,
		Status:         domain.ShipmentStatus(d.Status),
		Products:       decodeProducts(d.Products),
		Shipper:        d.Shipper,
		Receiver:       d.Receiver,
		Agency:         d.Agency,
		ShipmentType:   d.ShipmentType,
		ShipmentMode:   d.ShipmentMode,
		PaymentMode:    d.PaymentMode,
		CarrierRef:     d.CarrierRef,
		Location:       d.Location,
		AdminComment:   d.AdminComment,
		CreatedAt:      d.CreatedAt.UTC(),
		UpdatedAt:      d.UpdatedAt.UTC(),
	}
}

// decodeProducts recovers from documents whose cargo list was stored in a
// shape the current schema no longer understands. Bad data reads as an empty
// list instead of failing the whole shipment.
func decodeProducts(raw bson.RawValue) []domain.Product {
	if raw.Type == 0 || raw.Type == bson.TypeNull {
		return []domain.Product{}
	}
	var products []domain.Product
	if err := raw.Unmarshal(&products); err != nil {
		return []domain.Product{}
	}
	if products == nil {
		return []domain.Product{}
	}
	return products
}

// Insert stores a new shipment document and fills in the generated id.
func (r *ShipmentRepository) Insert(ctx context.Context, s *domain.Shipment) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"code":            s.Code,
		"name":            s.Name,
		"origin":          s.Origin,
		"current":         s.Current,
		"dest":            s.Dest,
		"estimated_hours": s.EstimatedHours,
		"progress":        s.Progress,
		"status":          string(s.Status),
		"products":        s.Products,
		"shipper":         s.Shipper,
		"receiver":        s.Receiver,
		"agency":          s.Agency,
		"shipment_type":   s.ShipmentType,
		"shipment_mode":   s.ShipmentMode,
		"payment_mode":    s.PaymentMode,
		"carrier_ref":     s.CarrierRef,
		"location":        s.Location,
		"admin_comment":   s.AdminComment,
		"created_at":      s.CreatedAt,
		"updated_at":      s.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		s.ID = oid.Hex()
	}
	return nil
}

// FindByCode retrieves a shipment by its shareable code, ignoring case.
func (r *ShipmentRepository) FindByCode(ctx context.Context, code string) (*domain.Shipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc shipmentDoc
	err := r.col.FindOne(ctx, bson.M{"code": code},
		options.FindOne().SetCollation(&caseInsensitive)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrShipmentNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// UpdateByID applies a partial update keyed by the internal document id and
// returns the updated record.
func (r *ShipmentRepository) UpdateByID(ctx context.Context, id string, patch ports.ShipmentPatch) (*domain.Shipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrShipmentNotFound
	}

	set := bson.M{"updated_at": patch.UpdatedAt}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Agency != nil {
		set["agency"] = *patch.Agency
	}
	if patch.Status != nil {
		set["status"] = string(*patch.Status)
	}
	if patch.ShipmentType != nil {
		set["shipment_type"] = *patch.ShipmentType
	}
	if patch.ShipmentMode != nil {
		set["shipment_mode"] = *patch.ShipmentMode
	}
	if patch.PaymentMode != nil {
		set["payment_mode"] = *patch.PaymentMode
	}
	if patch.CarrierRef != nil {
		set["carrier_ref"] = *patch.CarrierRef
	}
	if patch.Location != nil {
		set["location"] = *patch.Location
	}
	if patch.Current != nil {
		set["current"] = *patch.Current
	}
	if patch.Dest != nil {
		set["dest"] = *patch.Dest
	}
	if patch.EstimatedHours != nil {
		set["estimated_hours"] = *patch.EstimatedHours
	}
	if patch.Progress != nil {
		set["progress"] = *patch.Progress
	}
	if patch.Products != nil {
		set["products"] = *patch.Products
	}

	update := bson.M{"$set": set}
	if patch.ClearAdminComment {
		update["$unset"] = bson.M{"admin_comment": ""}
	} else if patch.AdminComment != nil {
		set["admin_comment"] = *patch.AdminComment
	}

	var doc shipmentDoc
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrShipmentNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

// ListAll returns every shipment, newest first.
func (r *ShipmentRepository) ListAll(ctx context.Context) ([]*domain.Shipment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	shipments := make([]*domain.Shipment, 0)
	for cur.Next(ctx) {
		var doc shipmentDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		shipments = append(shipments, doc.toDomain())
	}
	return shipments, cur.Err()
}

// EnsureIndexes creates the indexes the lookup paths depend on.
func (r *ShipmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "code", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetCollation(&caseInsensitive),
		},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
