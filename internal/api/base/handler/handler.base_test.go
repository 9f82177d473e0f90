package basehdl

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "order_commerce/internal/api/base/models"
	basesvc "order_commerce/internal/api/base/service"
	"order_commerce/internal/common"
	"order_commerce/internal/global"
	"order_commerce/internal/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(&logger.LogConfig{Level: "error", Format: "text", Output: "stdout"}); err != nil {
		panic(err)
	}
	global.InitValidator()
	os.Exit(m.Run())
}

// ====================================
// MODEL, DTO VÀ SERVICE GIẢ LẬP
// ====================================

type noteModel struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title"`
	OwnerID   primitive.ObjectID `json:"ownerId" bson:"ownerId,omitempty" ref:"customers"`
	AddedBy   primitive.ObjectID `json:"addedBy" bson:"addedBy,omitempty"`
	UpdatedBy primitive.ObjectID `json:"updatedBy" bson:"updatedBy,omitempty"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt,omitempty"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt,omitempty"`
}

type noteCreateInput struct {
	Title   string `json:"title" bson:"title" validate:"required,min=1,no_xss"`
	OwnerID string `json:"ownerId,omitempty" bson:"ownerId,omitempty" validate:"omitempty,mongodb"`
}

type noteUpdateInput struct {
	Title string `json:"title,omitempty" bson:"title,omitempty" validate:"omitempty,min=1,no_xss"`
}

// fakeNoteService giả lập BaseServiceMongo trong memory, ghi lại các lời gọi
// để test kiểm tra handler truyền gì xuống service.
type fakeNoteService struct {
	items       []noteModel
	inserted    []noteModel
	lastFilter  interface{}
	lastUpdate  interface{}
	countResult int64
}

func (s *fakeNoteService) InsertOne(ctx context.Context, data noteModel) (noteModel, error) {
	data.ID = primitive.NewObjectID()
	s.inserted = append(s.inserted, data)
	return data, nil
}

func (s *fakeNoteService) FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (noteModel, error) {
	if len(s.items) == 0 {
		return noteModel{}, common.ErrNotFound
	}
	return s.items[0], nil
}

func (s *fakeNoteService) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]noteModel, error) {
	s.lastFilter = filter
	return s.items, nil
}

func (s *fakeNoteService) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (noteModel, error) {
	s.lastUpdate = update
	return noteModel{}, nil
}

func (s *fakeNoteService) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	s.lastFilter = filter
	return s.countResult, nil
}

func (s *fakeNoteService) FindOneById(ctx context.Context, id primitive.ObjectID) (noteModel, error) {
	for _, item := range s.items {
		if item.ID == id {
			return item, nil
		}
	}
	return noteModel{}, common.ErrNotFound
}

func (s *fakeNoteService) FindManyByIds(ctx context.Context, ids []primitive.ObjectID) ([]noteModel, error) {
	return s.items, nil
}

func (s *fakeNoteService) FindWithPagination(ctx context.Context, filter interface{}, page, limit int64, opts *options.FindOptions) (*basemodels.PaginateResult[noteModel], error) {
	s.lastFilter = filter
	return basemodels.NewPaginateResult(s.items, int64(len(s.items)), page, limit), nil
}

func (s *fakeNoteService) UpdateById(ctx context.Context, id primitive.ObjectID, data interface{}) (noteModel, error) {
	s.lastUpdate = data
	for _, item := range s.items {
		if item.ID == id {
			return item, nil
		}
	}
	return noteModel{}, common.ErrNotFound
}

func (s *fakeNoteService) DeleteById(ctx context.Context, id primitive.ObjectID) error {
	return nil
}

func (s *fakeNoteService) Upsert(ctx context.Context, filter interface{}, data interface{}) (noteModel, error) {
	return noteModel{}, nil
}

func (s *fakeNoteService) DocumentExists(ctx context.Context, filter interface{}) (bool, error) {
	return len(s.items) > 0, nil
}

// ====================================
// HELPER DỰNG APP VÀ GỌI REQUEST
// ====================================

var testActorID = primitive.NewObjectID()

func newNoteApp(svc basesvc.BaseServiceMongo[noteModel], withAuth bool) *fiber.App {
	h := NewBaseHandler[noteModel, noteCreateInput, noteUpdateInput]("note", svc)
	app := fiber.New()
	if withAuth {
		app.Use(func(c fiber.Ctx) error {
			c.Locals("user_id", testActorID.Hex())
			return c.Next()
		})
	}
	app.Post("/create", h.InsertOne)
	app.Post("/list", h.Find)
	app.Post("/count", h.Count)
	app.Put("/update/:id", h.UpdateById)
	app.Put("/partial-update/:id", h.PartialUpdateById)
	app.Get("/:id", h.FindOneById)
	return app
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, app *fiber.App, method, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

// ====================================
// CREATE
// ====================================

func TestInsertOneStampsActor(t *testing.T) {
	svc := &fakeNoteService{}
	app := newNoteApp(svc, true)

	ownerID := primitive.NewObjectID()
	// addedBy trong body bị bỏ qua, server stamp từ actor trong context
	status, env := doRequest(t, app, "POST", "/create",
		`{"title":"ghi chú đầu tiên","ownerId":"`+ownerID.Hex()+`","addedBy":"`+primitive.NewObjectID().Hex()+`"}`)

	require.Equal(t, 200, status)
	require.Equal(t, common.ResponseStatusSuccess, env.Status)
	require.Len(t, svc.inserted, 1)
	require.Equal(t, testActorID, svc.inserted[0].AddedBy)
	require.Equal(t, testActorID, svc.inserted[0].UpdatedBy)
	require.Equal(t, ownerID, svc.inserted[0].OwnerID)
}

func TestInsertOneValidationFailureDoesNotInsert(t *testing.T) {
	svc := &fakeNoteService{}
	app := newNoteApp(svc, true)

	status, env := doRequest(t, app, "POST", "/create", `{"title":""}`)

	require.Equal(t, 400, status)
	require.Equal(t, common.ResponseStatusValidationError, env.Status)
	require.NotEmpty(t, env.Message)
	require.Empty(t, svc.inserted)
}

func TestInsertOneEmptyBody(t *testing.T) {
	app := newNoteApp(&fakeNoteService{}, true)

	status, env := doRequest(t, app, "POST", "/create", "")

	require.Equal(t, 400, status)
	require.Equal(t, common.ResponseStatusValidationError, env.Status)
}

func TestInsertOneWithoutAuthContext(t *testing.T) {
	svc := &fakeNoteService{}
	app := newNoteApp(svc, false)

	status, env := doRequest(t, app, "POST", "/create", `{"title":"không có token"}`)

	require.Equal(t, 401, status)
	require.Equal(t, common.ResponseStatusBadRequest, env.Status)
	require.Empty(t, svc.inserted)
}

// ====================================
// LIST / COUNT
// ====================================

func TestFindEmptyResultIsRecordNotFound(t *testing.T) {
	app := newNoteApp(&fakeNoteService{}, true)

	status, env := doRequest(t, app, "POST", "/list", `{"query":{"title":"không tồn tại"}}`)

	require.Equal(t, 404, status)
	require.Equal(t, common.ResponseStatusRecordNotFound, env.Status)
	require.Empty(t, env.Message)
}

func TestFindReturnsPaginateResult(t *testing.T) {
	svc := &fakeNoteService{items: []noteModel{
		{ID: primitive.NewObjectID(), Title: "a"},
		{ID: primitive.NewObjectID(), Title: "b"},
	}}
	app := newNoteApp(svc, true)

	status, env := doRequest(t, app, "POST", "/list",
		`{"query":{"title":"a"},"options":{"page":2,"limit":5}}`)

	require.Equal(t, 200, status)
	require.Equal(t, common.ResponseStatusSuccess, env.Status)

	var result struct {
		Data         []noteModel `json:"data"`
		TotalRecords int64       `json:"totalRecords"`
		Page         int64       `json:"page"`
		Limit        int64       `json:"limit"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.Len(t, result.Data, 2)
	require.Equal(t, int64(2), result.Page)
	require.Equal(t, int64(5), result.Limit)
}

func TestFindCountOnly(t *testing.T) {
	svc := &fakeNoteService{countResult: 7}
	app := newNoteApp(svc, true)

	status, env := doRequest(t, app, "POST", "/list", `{"query":{},"isCountOnly":true}`)

	require.Equal(t, 200, status)
	require.Equal(t, common.ResponseStatusSuccess, env.Status)

	var result basemodels.CountResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.Equal(t, int64(7), result.Count)
}

func TestFindRejectsUnknownBodyKey(t *testing.T) {
	app := newNoteApp(&fakeNoteService{}, true)

	status, env := doRequest(t, app, "POST", "/list", `{"filter":{"title":"a"}}`)

	require.Equal(t, 400, status)
	require.Equal(t, common.ResponseStatusValidationError, env.Status)
	require.Contains(t, env.Message, "filter")
}

func TestFindRejectsUnknownOptionKey(t *testing.T) {
	app := newNoteApp(&fakeNoteService{}, true)

	status, env := doRequest(t, app, "POST", "/list", `{"options":{"sort":{"title":1}}}`)

	require.Equal(t, 400, status)
	require.Equal(t, common.ResponseStatusValidationError, env.Status)
}

func TestFindRejectsDeniedField(t *testing.T) {
	app := newNoteApp(&fakeNoteService{}, true)

	status, env := doRequest(t, app, "POST", "/list", `{"query":{"passwordHash":"x"}}`)

	require.Equal(t, 400, status)
	require.Equal(t, common.ResponseStatusValidationError, env.Status)
}

func TestFindRejectsDisallowedOperator(t *testing.T) {
	app := newNoteApp(&fakeNoteService{}, true)

	status, env := doRequest(t, app, "POST", "/list", `{"query":{"title":{"$where":"1 == 1"}}}`)

	require.Equal(t, 400, status)
	require.Equal(t, common.ResponseStatusValidationError, env.Status)
}

func TestCountZeroIsSuccess(t *testing.T) {
	svc := &fakeNoteService{countResult: 0}
	app := newNoteApp(svc, true)

	status, env := doRequest(t, app, "POST", "/count", `{"query":{"title":"chưa có"}}`)

	require.Equal(t, 200, status)
	require.Equal(t, common.ResponseStatusSuccess, env.Status)

	var result basemodels.CountResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.Equal(t, int64(0), result.Count)
}

// ====================================
// GET BY ID
// ====================================

func TestFindOneByIdInvalidHex(t *testing.T) {
	app := newNoteApp(&fakeNoteService{}, true)

	status, env := doRequest(t, app, "GET", "/khong-phai-objectid", "")

	require.Equal(t, 400, status)
	require.Equal(t, common.ResponseStatusValidationError, env.Status)
	require.Contains(t, env.Message, "ObjectID")
}

func TestFindOneByIdMissing(t *testing.T) {
	app := newNoteApp(&fakeNoteService{}, true)

	status, env := doRequest(t, app, "GET", "/"+primitive.NewObjectID().Hex(), "")

	require.Equal(t, 404, status)
	require.Equal(t, common.ResponseStatusRecordNotFound, env.Status)
}

func TestFindOneByIdFound(t *testing.T) {
	item := noteModel{ID: primitive.NewObjectID(), Title: "tìm thấy"}
	app := newNoteApp(&fakeNoteService{items: []noteModel{item}}, true)

	status, env := doRequest(t, app, "GET", "/"+item.ID.Hex(), "")

	require.Equal(t, 200, status)
	require.Equal(t, common.ResponseStatusSuccess, env.Status)

	var got noteModel
	require.NoError(t, json.Unmarshal(env.Data, &got))
	require.Equal(t, item.ID, got.ID)
	require.Equal(t, "tìm thấy", got.Title)
}

// ====================================
// UPDATE / PARTIAL UPDATE
// ====================================

func TestUpdateByIdBuildsSetWithActor(t *testing.T) {
	item := noteModel{ID: primitive.NewObjectID(), Title: "cũ"}
	svc := &fakeNoteService{items: []noteModel{item}}
	app := newNoteApp(svc, true)

	status, env := doRequest(t, app, "PUT", "/update/"+item.ID.Hex(), `{"title":"mới"}`)

	require.Equal(t, 200, status)
	require.Equal(t, common.ResponseStatusSuccess, env.Status)

	update, ok := svc.lastUpdate.(*basesvc.UpdateData)
	require.True(t, ok, "service phải nhận *UpdateData")
	require.Equal(t, "mới", update.Set["title"])
	require.Equal(t, testActorID, update.Set["updatedBy"])
	require.NotContains(t, update.Set, "addedBy")
	require.NotContains(t, update.Set, "createdAt")
	require.NotContains(t, update.Set, "updatedAt")
	require.NotContains(t, update.Set, "_id")
}

func TestUpdateByIdRequiresFullSchema(t *testing.T) {
	item := noteModel{ID: primitive.NewObjectID(), Title: "cũ"}
	svc := &fakeNoteService{items: []noteModel{item}}
	app := newNoteApp(svc, true)

	// Full update dùng schema create: thiếu title bắt buộc là lỗi validation
	status, env := doRequest(t, app, "PUT", "/update/"+item.ID.Hex(), `{"ownerId":"`+primitive.NewObjectID().Hex()+`"}`)

	require.Equal(t, 400, status)
	require.Equal(t, common.ResponseStatusValidationError, env.Status)
	require.Nil(t, svc.lastUpdate)
}

func TestPartialUpdateAllowsMissingFields(t *testing.T) {
	item := noteModel{ID: primitive.NewObjectID(), Title: "cũ"}
	svc := &fakeNoteService{items: []noteModel{item}}
	app := newNoteApp(svc, true)

	// addedBy trong body không thể lọt vào $set
	status, env := doRequest(t, app, "PUT", "/partial-update/"+item.ID.Hex(),
		`{"title":"một phần","addedBy":"`+primitive.NewObjectID().Hex()+`"}`)

	require.Equal(t, 200, status)
	require.Equal(t, common.ResponseStatusSuccess, env.Status)

	update, ok := svc.lastUpdate.(*basesvc.UpdateData)
	require.True(t, ok)
	require.Equal(t, "một phần", update.Set["title"])
	require.Equal(t, testActorID, update.Set["updatedBy"])
	require.NotContains(t, update.Set, "addedBy")
}

func TestPartialUpdateMissingRecord(t *testing.T) {
	app := newNoteApp(&fakeNoteService{}, true)

	status, env := doRequest(t, app, "PUT", "/partial-update/"+primitive.NewObjectID().Hex(), `{"title":"x"}`)

	require.Equal(t, 404, status)
	require.Equal(t, common.ResponseStatusRecordNotFound, env.Status)
}

// ====================================
// CHUẨN HÓA FILTER
// ====================================

func TestEffectiveFilterNormalizesIDs(t *testing.T) {
	h := NewBaseHandler[noteModel, noteCreateInput, noteUpdateInput]("note", &fakeNoteService{})

	hexID := primitive.NewObjectID()
	body := &FilterBody{Query: map[string]interface{}{
		"_id":     hexID.Hex(),
		"ownerId": map[string]interface{}{"$in": []interface{}{hexID.Hex()}},
		"title":   hexID.Hex(), // không phải ID field, giữ nguyên chuỗi
	}}

	filter, err := h.EffectiveFilter(body)
	require.NoError(t, err)
	require.Equal(t, hexID, filter["_id"])
	require.Equal(t, hexID.Hex(), filter["title"])

	nested, ok := filter["ownerId"].(map[string]interface{})
	require.True(t, ok)
	values, ok := nested["$in"].([]interface{})
	require.True(t, ok)
	require.Equal(t, hexID, values[0])
}

func TestEffectiveFilterExtendedJSONAndNumbers(t *testing.T) {
	h := NewBaseHandler[noteModel, noteCreateInput, noteUpdateInput]("note", &fakeNoteService{})

	hexID := primitive.NewObjectID()
	body := &FilterBody{Query: map[string]interface{}{
		"ownerId":   map[string]interface{}{"$oid": hexID.Hex()},
		"createdAt": map[string]interface{}{"$gte": json.Number("1700000000000")},
		"score":     json.Number("4.5"),
	}}

	filter, err := h.EffectiveFilter(body)
	require.NoError(t, err)
	require.Equal(t, hexID, filter["ownerId"])

	nested, ok := filter["createdAt"].(map[string]interface{})
	require.True(t, ok)
	require.Equal(t, int64(1700000000000), nested["$gte"])
	require.Equal(t, 4.5, filter["score"])
}

func TestEffectiveFilterWhereIsAlias(t *testing.T) {
	h := NewBaseHandler[noteModel, noteCreateInput, noteUpdateInput]("note", &fakeNoteService{})

	filter, err := h.EffectiveFilter(&FilterBody{Where: map[string]interface{}{"title": "a"}})
	require.NoError(t, err)
	require.Equal(t, "a", filter["title"])

	// query thắng where khi cả hai cùng có mặt
	filter, err = h.EffectiveFilter(&FilterBody{
		Query: map[string]interface{}{"title": "ưu tiên"},
		Where: map[string]interface{}{"title": "bị bỏ qua"},
	})
	require.NoError(t, err)
	require.Equal(t, "ưu tiên", filter["title"])
}

func TestEffectiveFilterTooManyFields(t *testing.T) {
	h := NewBaseHandler[noteModel, noteCreateInput, noteUpdateInput]("note", &fakeNoteService{})

	query := map[string]interface{}{}
	for i := 0; i < 11; i++ {
		query["field"+string(rune('a'+i))] = i
	}

	_, err := h.EffectiveFilter(&FilterBody{Query: query})
	require.Error(t, err)
}

// ====================================
// TRANSFORM
// ====================================

func TestTransformToModelConvertsHexReference(t *testing.T) {
	ownerID := primitive.NewObjectID()
	input := noteCreateInput{Title: "chuyển đổi", OwnerID: ownerID.Hex()}

	model, err := TransformToModel[noteModel](&input)
	require.NoError(t, err)
	require.Equal(t, "chuyển đổi", model.Title)
	require.Equal(t, ownerID, model.OwnerID)
}
