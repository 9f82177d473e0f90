package basesvc

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"order_commerce/internal/common"
	"order_commerce/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseRefTags phân tích struct tag "ref" của model để lấy map
// từ tên field bson sang tên collection được tham chiếu.
//
// Ví dụ:
//
//	CustomerID primitive.ObjectID `bson:"customerId" ref:"customers"`
func ParseRefTags(structType reflect.Type) map[string]string {
	if structType.Kind() == reflect.Ptr {
		structType = structType.Elem()
	}

	refs := map[string]string{}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		collectionName := field.Tag.Get("ref")
		if collectionName == "" {
			continue
		}
		bsonField := strings.Split(field.Tag.Get("bson"), ",")[0]
		if bsonField == "" || bsonField == "-" {
			continue
		}
		refs[bsonField] = collectionName
	}
	return refs
}

// PopulateMaps thay thế giá trị ObjectID của các ref field trong items
// bằng document được tham chiếu. Mỗi field được fetch một lần bằng $in
// qua registry collections, không query từng item.
//
// Field yêu cầu populate nhưng không khai báo ref tag trong model
// sẽ trả về lỗi validation.
func PopulateMaps(ctx context.Context, items []map[string]interface{}, fields []string, refs map[string]string) error {
	if len(items) == 0 || len(fields) == 0 {
		return nil
	}

	for _, fieldName := range fields {
		collectionName, ok := refs[fieldName]
		if !ok {
			return common.NewError(
				common.ErrCodeValidationInput,
				fmt.Sprintf("Field '%s' không hỗ trợ populate", fieldName),
				common.StatusBadRequest,
				nil,
			)
		}

		collection, exists := global.RegistryCollections.Get(collectionName)
		if !exists {
			return common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Không tìm thấy collection '%s' để populate", collectionName),
				common.StatusInternalServerError,
				nil,
			)
		}

		// Gom các ObjectID cần fetch, bỏ trùng
		idSet := map[primitive.ObjectID]bool{}
		for _, item := range items {
			if id, ok := item[fieldName].(primitive.ObjectID); ok && id != primitive.NilObjectID {
				idSet[id] = true
			}
		}
		if len(idSet) == 0 {
			continue
		}

		ids := make([]primitive.ObjectID, 0, len(idSet))
		for id := range idSet {
			ids = append(ids, id)
		}

		cursor, err := collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
		if err != nil {
			return common.ConvertMongoError(err)
		}

		var docs []bson.M
		if err := cursor.All(ctx, &docs); err != nil {
			return common.ConvertMongoError(err)
		}

		docById := map[primitive.ObjectID]bson.M{}
		for _, doc := range docs {
			if id, ok := doc["_id"].(primitive.ObjectID); ok {
				docById[id] = doc
			}
		}

		// Thay ObjectID bằng document tham chiếu; ID không tìm thấy giữ nguyên
		for _, item := range items {
			if id, ok := item[fieldName].(primitive.ObjectID); ok {
				if doc, found := docById[id]; found {
					item[fieldName] = doc
				}
			}
		}
	}

	return nil
}
