package patients

import (
	"context"
	"patient-service/internal/app/models"
	"patient-service/internal/pkg/constvars"
	"patient-service/internal/pkg/dto/requests"
	"patient-service/internal/pkg/exceptions"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.uber.org/zap"
)

func TestPatientMongoRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("Insert Uses Storage Field Names", func(mt *mtest.T) {
		repository := NewPatientMongoRepository(mt.Client, mt.DB.Name())
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		insertedID, err := repository.Insert(ctx, &models.Patient{Name: "Alice", PatientID: "P1"})

		require.NoError(mt, err)
		assert.False(mt, insertedID.IsZero(), "driver should assign an ObjectID")

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "insert", started.CommandName)
		document := started.Command.Lookup("documents").Array().Index(0).Value().Document()
		assert.Equal(mt, "Alice", document.Lookup(constvars.MongoFieldName).StringValue())
		assert.Equal(mt, "P1", document.Lookup(constvars.MongoFieldPatientID).StringValue())
		assert.Equal(mt, insertedID, document.Lookup(constvars.MongoFieldID).ObjectID())
	})

	mt.Run("Insert Write Error", func(mt *mtest.T) {
		repository := NewPatientMongoRepository(mt.Client, mt.DB.Name())
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    121,
			Message: "document failed validation",
		}))

		_, err := repository.Insert(ctx, &models.Patient{Name: "Alice", PatientID: "P1"})

		var customErr *exceptions.CustomError
		require.ErrorAs(mt, err, &customErr)
		assert.Equal(mt, constvars.StatusInternalServerError, customErr.StatusCode)
	})

	mt.Run("Update Filters On PatientID And Sets Name", func(mt *mtest.T) {
		repository := NewPatientMongoRepository(mt.Client, mt.DB.Name())
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		matched, err := repository.UpdateNameByPatientID(ctx, "P1", "Alicia")

		require.NoError(mt, err)
		assert.Equal(mt, int64(1), matched)

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "update", started.CommandName)
		update := started.Command.Lookup("updates").Array().Index(0).Value().Document()
		assert.Equal(mt, "P1", update.Lookup("q", constvars.MongoFieldPatientID).StringValue())
		assert.Equal(mt, "Alicia", update.Lookup("u", "$set", constvars.MongoFieldName).StringValue())
		multi, ok := update.Lookup("multi").BooleanOK()
		assert.False(mt, ok && multi, "only one document may be updated")
	})

	mt.Run("Update Without Match", func(mt *mtest.T) {
		repository := NewPatientMongoRepository(mt.Client, mt.DB.Name())
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		matched, err := repository.UpdateNameByPatientID(ctx, "missing", "Alicia")

		require.NoError(mt, err)
		assert.Equal(mt, int64(0), matched)
	})

	mt.Run("FindAll Returns Every Document", func(mt *mtest.T) {
		repository := NewPatientMongoRepository(mt.Client, mt.DB.Name())
		namespace := mt.DB.Name() + "." + constvars.MongoCollectionPatients
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "Name", Value: "Alice"}, {Key: "PatientID", Value: "P1"}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "Name", Value: "Bob"}, {Key: "PatientID", Value: "P2"}},
		))

		cursor, err := repository.FindAll(ctx)
		require.NoError(mt, err)
		defer cursor.Close(ctx)

		names := make([]string, 0)
		for cursor.Next(ctx) {
			var raw bson.Raw
			require.NoError(mt, cursor.Decode(&raw))
			names = append(names, raw.Lookup("Name").StringValue())
		}
		require.NoError(mt, cursor.Err())
		assert.Equal(mt, []string{"Alice", "Bob"}, names)
	})

	mt.Run("FindAll Through Usecase Releases Open Cursor", func(mt *mtest.T) {
		repository := NewPatientMongoRepository(mt.Client, mt.DB.Name())
		usecase := NewPatientUsecase(repository, nil, zap.NewNop())
		namespace := mt.DB.Name() + "." + constvars.MongoCollectionPatients
		mt.AddMockResponses(
			mtest.CreateCursorResponse(42, namespace, mtest.FirstBatch,
				bson.D{{Key: "Name", Value: "Alice"}, {Key: "PatientID", Value: "P1"}},
			),
			mtest.CreateCommandErrorResponse(mtest.CommandError{
				Code:    96,
				Message: "getMore failed",
				Name:    "OperationFailed",
			}),
			mtest.CreateSuccessResponse(),
		)

		result, err := usecase.FindAll(ctx)

		assert.Error(mt, err)
		assert.Nil(mt, result)

		commandNames := make([]string, 0)
		for _, started := range mt.GetAllStartedEvents() {
			commandNames = append(commandNames, started.CommandName)
		}
		assert.Equal(mt, []string{"find", "getMore", "killCursors"}, commandNames)
	})

	mt.Run("Create Update Then List Shows New Name", func(mt *mtest.T) {
		repository := NewPatientMongoRepository(mt.Client, mt.DB.Name())
		publisher := new(MockPatientEventPublisher)
		publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
		usecase := NewPatientUsecase(repository, publisher, zap.NewNop())
		namespace := mt.DB.Name() + "." + constvars.MongoCollectionPatients

		mt.AddMockResponses(mtest.CreateSuccessResponse())
		created, err := usecase.Create(ctx, &requests.Patient{Name: "Alice", PatientID: "P1"})
		require.NoError(mt, err)

		insertEvent := mt.GetStartedEvent()
		require.NotNil(mt, insertEvent)
		var stored bson.D
		require.NoError(mt, bson.Unmarshal(insertEvent.Command.Lookup("documents").Array().Index(0).Value().Document(), &stored))

		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))
		require.NoError(mt, usecase.Update(ctx, "P1", &requests.Patient{Name: "Alicia", PatientID: "P1"}))

		updateEvent := mt.GetStartedEvent()
		require.NotNil(mt, updateEvent)
		update := updateEvent.Command.Lookup("updates").Array().Index(0).Value().Document()
		filterPatientID := update.Lookup("q", constvars.MongoFieldPatientID).StringValue()
		newName := update.Lookup("u", "$set", constvars.MongoFieldName).StringValue()
		for i, field := range stored {
			if field.Key == constvars.MongoFieldName && storedPatientID(stored) == filterPatientID {
				stored[i].Value = newName
			}
		}

		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace, mtest.FirstBatch, stored))
		patients, err := usecase.FindAll(ctx)

		require.NoError(mt, err)
		require.Len(mt, patients, 1)
		name, _ := patients[0].Get(constvars.MongoFieldName)
		patientID, _ := patients[0].Get(constvars.MongoFieldPatientID)
		id, _ := patients[0].Get(constvars.MongoFieldID)
		assert.Equal(mt, "Alicia", name)
		assert.Equal(mt, "P1", patientID)
		assert.Equal(mt, created.ID.Hex(), id)
		publisher.AssertNumberOfCalls(mt, "Publish", 2)
	})

	mt.Run("FindAll Command Error", func(mt *mtest.T) {
		repository := NewPatientMongoRepository(mt.Client, mt.DB.Name())
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Message: "not authorized",
			Name:    "Unauthorized",
		}))

		cursor, err := repository.FindAll(ctx)

		var customErr *exceptions.CustomError
		require.ErrorAs(mt, err, &customErr)
		assert.Nil(mt, cursor)
	})
}

func storedPatientID(document bson.D) string {
	for _, field := range document {
		if field.Key == constvars.MongoFieldPatientID {
			patientID, _ := field.Value.(string)
			return patientID
		}
	}
	return ""
}
