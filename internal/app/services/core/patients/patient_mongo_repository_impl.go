package patients

import (
	"context"
	"fmt"
	"patient-service/internal/app/contracts"
	"patient-service/internal/app/models"
	"patient-service/internal/pkg/constvars"
	"patient-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type PatientMongoRepository struct {
	Collection *mongo.Collection
}

func NewPatientMongoRepository(db *mongo.Client, dbName string) contracts.PatientRepository {
	return &PatientMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionPatients),
	}
}

func (repo *PatientMongoRepository) FindAll(ctx context.Context) (contracts.DocumentCursor, error) {
	cursor, err := repo.Collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return cursor, nil
}

func (repo *PatientMongoRepository) Insert(ctx context.Context, patient *models.Patient) (primitive.ObjectID, error) {
	result, err := repo.Collection.InsertOne(ctx, patient)
	if err != nil {
		return primitive.NilObjectID, exceptions.ErrMongoDBInsertDocument(err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, exceptions.ErrMongoDBInsertDocument(fmt.Errorf("unexpected inserted id type %T", result.InsertedID))
	}
	return insertedID, nil
}

// UpdateNameByPatientID sets Name on the first document whose PatientID
// matches and reports how many documents matched the filter.
func (repo *PatientMongoRepository) UpdateNameByPatientID(ctx context.Context, patientID, name string) (int64, error) {
	filter := bson.D{{Key: constvars.MongoFieldPatientID, Value: patientID}}
	update := bson.D{{Key: "$set", Value: bson.D{{Key: constvars.MongoFieldName, Value: name}}}}

	result, err := repo.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return 0, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount, nil
}
