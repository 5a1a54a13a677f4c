package patients

import (
	"context"
	"errors"
	"patient-service/internal/app/contracts"
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
	"go.uber.org/zap"
)

type MockPatientRepository struct {
	mock.Mock
}

func (m *MockPatientRepository) FindAll(ctx context.Context) (contracts.DocumentCursor, error) {
	args := m.Called(ctx)
	cursor, _ := args.Get(0).(contracts.DocumentCursor)
	return cursor, args.Error(1)
}

func (m *MockPatientRepository) Insert(ctx context.Context, patient *models.Patient) (primitive.ObjectID, error) {
	args := m.Called(ctx, patient)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *MockPatientRepository) UpdateNameByPatientID(ctx context.Context, patientID, name string) (int64, error) {
	args := m.Called(ctx, patientID, name)
	return args.Get(0).(int64), args.Error(1)
}

type MockPatientEventPublisher struct {
	mock.Mock
}

func (m *MockPatientEventPublisher) Publish(ctx context.Context, event *models.PatientEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// fakeCursor serves pre-built documents and counts how often it was closed.
type fakeCursor struct {
	documents   []bson.Raw
	position    int
	decodeErr   error
	decodeErrAt int
	err         error
	closeCount  int
}

func (c *fakeCursor) Next(ctx context.Context) bool {
	if c.position >= len(c.documents) {
		return false
	}
	c.position++
	return true
}

func (c *fakeCursor) Decode(val interface{}) error {
	if c.decodeErr != nil && c.position-1 == c.decodeErrAt {
		return c.decodeErr
	}
	*val.(*bson.Raw) = c.documents[c.position-1]
	return nil
}

func (c *fakeCursor) Err() error {
	return c.err
}

func (c *fakeCursor) Close(ctx context.Context) error {
	c.closeCount++
	return nil
}

func mustRaw(t *testing.T, document bson.D) bson.Raw {
	t.Helper()
	raw, err := bson.Marshal(document)
	require.NoError(t, err)
	return raw
}

func newTestPatientUsecase() (*patientUsecase, *MockPatientRepository, *MockPatientEventPublisher) {
	repository := new(MockPatientRepository)
	publisher := new(MockPatientEventPublisher)
	usecase := NewPatientUsecase(repository, publisher, zap.NewNop()).(*patientUsecase)
	return usecase, repository, publisher
}

func TestPatientUsecase_FindAll(t *testing.T) {
	ctx := context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, "test-request-id")

	t.Run("Empty Collection", func(t *testing.T) {
		usecase, repository, _ := newTestPatientUsecase()
		cursor := &fakeCursor{}
		repository.On("FindAll", mock.Anything).Return(cursor, nil)

		result, err := usecase.FindAll(ctx)

		require.NoError(t, err)
		assert.NotNil(t, result, "empty collection should give an empty, non-nil slice")
		assert.Len(t, result, 0)
		assert.Equal(t, 1, cursor.closeCount, "cursor should be closed once")
	})

	t.Run("Every Field Becomes Text", func(t *testing.T) {
		usecase, repository, _ := newTestPatientUsecase()
		objectID := primitive.NewObjectID()
		cursor := &fakeCursor{documents: []bson.Raw{
			mustRaw(t, bson.D{
				{Key: "_id", Value: objectID},
				{Key: "Name", Value: "Alice"},
				{Key: "PatientID", Value: "P1"},
				{Key: "Age", Value: int32(42)},
			}),
			mustRaw(t, bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "Name", Value: "Bob"},
				{Key: "PatientID", Value: "P2"},
			}),
		}}
		repository.On("FindAll", mock.Anything).Return(cursor, nil)

		result, err := usecase.FindAll(ctx)

		require.NoError(t, err)
		require.Len(t, result, 2)

		first := result[0]
		assert.Equal(t, []string{"_id", "Name", "PatientID", "Age"}, []string{first[0].Key, first[1].Key, first[2].Key, first[3].Key}, "storage order should be kept")
		id, _ := first.Get("_id")
		assert.Equal(t, objectID.Hex(), id)
		name, _ := first.Get("Name")
		assert.Equal(t, "Alice", name)
		age, _ := first.Get("Age")
		assert.Equal(t, "42", age)

		name, _ = result[1].Get("Name")
		assert.Equal(t, "Bob", name)
		assert.Equal(t, 1, cursor.closeCount)
	})

	t.Run("Cursor Closed When Decode Fails Midway", func(t *testing.T) {
		usecase, repository, _ := newTestPatientUsecase()
		cursors := make([]*fakeCursor, 0, 3)
		for i := 0; i < 3; i++ {
			cursor := &fakeCursor{
				documents: []bson.Raw{
					mustRaw(t, bson.D{{Key: "Name", Value: "Alice"}}),
					mustRaw(t, bson.D{{Key: "Name", Value: "Bob"}}),
				},
				decodeErr:   errors.New("decode failed"),
				decodeErrAt: 1,
			}
			cursors = append(cursors, cursor)
			repository.On("FindAll", mock.Anything).Return(cursor, nil).Once()
		}

		for range cursors {
			result, err := usecase.FindAll(ctx)
			assert.Error(t, err)
			assert.Nil(t, result)
		}

		for i, cursor := range cursors {
			assert.Equal(t, 1, cursor.closeCount, "cursor %d should be closed exactly once", i)
		}
	})

	t.Run("Cursor Closed When Stringify Fails", func(t *testing.T) {
		usecase, repository, _ := newTestPatientUsecase()
		cursor := &fakeCursor{documents: []bson.Raw{
			mustRaw(t, bson.D{{Key: "Name", Value: "Alice"}}),
			bson.Raw{0x0c, 0x00, 0x00, 0x00, 0x02, 'N', 0x00},
		}}
		repository.On("FindAll", mock.Anything).Return(cursor, nil)

		result, err := usecase.FindAll(ctx)

		assert.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, 1, cursor.closeCount)
	})

	t.Run("Cursor Error After Iteration", func(t *testing.T) {
		usecase, repository, _ := newTestPatientUsecase()
		cursor := &fakeCursor{err: errors.New("connection reset")}
		repository.On("FindAll", mock.Anything).Return(cursor, nil)

		result, err := usecase.FindAll(ctx)

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusInternalServerError, customErr.StatusCode)
		assert.Nil(t, result)
		assert.Equal(t, 1, cursor.closeCount)
	})

	t.Run("Repository Error", func(t *testing.T) {
		usecase, repository, _ := newTestPatientUsecase()
		repository.On("FindAll", mock.Anything).Return(nil, exceptions.ErrMongoDBFindDocument(errors.New("no reachable servers")))

		result, err := usecase.FindAll(ctx)

		assert.Error(t, err)
		assert.Nil(t, result)
	})
}

func TestPatientUsecase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Valid Patient", func(t *testing.T) {
		usecase, repository, publisher := newTestPatientUsecase()
		insertedID := primitive.NewObjectID()
		repository.On("Insert", mock.Anything, mock.MatchedBy(func(patient *models.Patient) bool {
			return patient.Name == "Alice" && patient.PatientID == "P1" && patient.ID.IsZero()
		})).Return(insertedID, nil)
		publisher.On("Publish", mock.Anything, mock.MatchedBy(func(event *models.PatientEvent) bool {
			return event.Type == constvars.PatientEventCreated && event.PatientID == "P1" && event.Name == "Alice" && event.ID != ""
		})).Return(nil)

		patient, err := usecase.Create(ctx, &requests.Patient{Name: "Alice", PatientID: "P1"})

		require.NoError(t, err)
		assert.Equal(t, insertedID, patient.ID)
		assert.Equal(t, "Alice", patient.Name)
		assert.Equal(t, "P1", patient.PatientID)
		repository.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("Blank Name", func(t *testing.T) {
		usecase, repository, publisher := newTestPatientUsecase()

		patient, err := usecase.Create(ctx, &requests.Patient{Name: "", PatientID: "P2"})

		var validationFailure *exceptions.ValidationFailure
		require.ErrorAs(t, err, &validationFailure)
		assert.Equal(t, []string{"name must not be blank"}, validationFailure.Messages)
		assert.Nil(t, patient)
		repository.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("Every Violation Reported In Field Order", func(t *testing.T) {
		usecase, repository, _ := newTestPatientUsecase()

		_, err := usecase.Create(ctx, &requests.Patient{Name: "   ", PatientID: ""})

		var validationFailure *exceptions.ValidationFailure
		require.ErrorAs(t, err, &validationFailure)
		assert.Equal(t, []string{"name must not be blank", "patientID must not be blank"}, validationFailure.Messages)
		repository.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("Storage Error", func(t *testing.T) {
		usecase, repository, publisher := newTestPatientUsecase()
		repository.On("Insert", mock.Anything, mock.Anything).Return(primitive.NilObjectID, exceptions.ErrMongoDBInsertDocument(errors.New("write failed")))

		patient, err := usecase.Create(ctx, &requests.Patient{Name: "Alice", PatientID: "P1"})

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusInternalServerError, customErr.StatusCode)
		assert.Nil(t, patient)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("Publish Error Does Not Fail Create", func(t *testing.T) {
		usecase, repository, publisher := newTestPatientUsecase()
		repository.On("Insert", mock.Anything, mock.Anything).Return(primitive.NewObjectID(), nil)
		publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("channel closed"))

		patient, err := usecase.Create(ctx, &requests.Patient{Name: "Alice", PatientID: "P1"})

		require.NoError(t, err)
		assert.NotNil(t, patient)
	})
}

func TestPatientUsecase_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Path ID Is Authoritative", func(t *testing.T) {
		usecase, repository, publisher := newTestPatientUsecase()
		repository.On("UpdateNameByPatientID", mock.Anything, "P1", "Alicia").Return(int64(1), nil)
		publisher.On("Publish", mock.Anything, mock.MatchedBy(func(event *models.PatientEvent) bool {
			return event.Type == constvars.PatientEventUpdated && event.PatientID == "P1" && event.Name == "Alicia"
		})).Return(nil)

		err := usecase.Update(ctx, "P1", &requests.Patient{Name: "Alicia", PatientID: "SOMETHING-ELSE"})

		require.NoError(t, err)
		repository.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("No Matching Patient Still Succeeds", func(t *testing.T) {
		usecase, repository, publisher := newTestPatientUsecase()
		repository.On("UpdateNameByPatientID", mock.Anything, "missing", "Alicia").Return(int64(0), nil)

		err := usecase.Update(ctx, "missing", &requests.Patient{Name: "Alicia", PatientID: "missing"})

		assert.NoError(t, err)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("Invalid Payload", func(t *testing.T) {
		usecase, repository, _ := newTestPatientUsecase()

		err := usecase.Update(ctx, "P1", &requests.Patient{Name: "", PatientID: "P1"})

		var validationFailure *exceptions.ValidationFailure
		require.ErrorAs(t, err, &validationFailure)
		assert.Equal(t, []string{"name must not be blank"}, validationFailure.Messages)
		repository.AssertNotCalled(t, "UpdateNameByPatientID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Storage Error", func(t *testing.T) {
		usecase, repository, _ := newTestPatientUsecase()
		repository.On("UpdateNameByPatientID", mock.Anything, "P1", "Alicia").Return(int64(0), exceptions.ErrMongoDBUpdateDocument(errors.New("write failed")))

		err := usecase.Update(ctx, "P1", &requests.Patient{Name: "Alicia", PatientID: "P1"})

		var customErr *exceptions.CustomError
		assert.ErrorAs(t, err, &customErr)
	})
}
