package utility

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestToMapDungTagBson(t *testing.T) {
	type sample struct {
		Name    string             `bson:"name"`
		OwnerID primitive.ObjectID `bson:"ownerId,omitempty"`
		Email   string             `bson:"email,omitempty"`
	}

	ownerID := primitive.NewObjectID()
	m, err := ToMap(sample{Name: "Nguyễn Văn A", OwnerID: ownerID})
	if err != nil {
		t.Fatalf("ToMap trả về lỗi không mong đợi: %v", err)
	}

	if m["name"] != "Nguyễn Văn A" {
		t.Errorf("m[name] = %v, mong đợi 'Nguyễn Văn A'", m["name"])
	}
	if got, ok := m["ownerId"].(primitive.ObjectID); !ok || got != ownerID {
		t.Errorf("m[ownerId] = %v, mong đợi ObjectID %s", m["ownerId"], ownerID.Hex())
	}
	if _, exists := m["email"]; exists {
		t.Error("Field omitempty rỗng không được xuất hiện trong map")
	}
}

func TestToMaps(t *testing.T) {
	type sample struct {
		Name string `bson:"name"`
	}

	maps, err := ToMaps([]sample{{Name: "a"}, {Name: "b"}})
	if err != nil {
		t.Fatalf("ToMaps trả về lỗi không mong đợi: %v", err)
	}
	if len(maps) != 2 {
		t.Fatalf("ToMaps trả về %d map, mong đợi 2", len(maps))
	}
	if maps[0]["name"] != "a" || maps[1]["name"] != "b" {
		t.Error("ToMaps phải giữ nguyên thứ tự phần tử")
	}
}

func TestString2ObjectID(t *testing.T) {
	objID := primitive.NewObjectID()
	if got := String2ObjectID(objID.Hex()); got != objID {
		t.Errorf("String2ObjectID = %s, mong đợi %s", got.Hex(), objID.Hex())
	}
	if got := String2ObjectID("không hợp lệ"); got != primitive.NilObjectID {
		t.Errorf("Chuỗi không hợp lệ phải trả về NilObjectID, nhận được %s", got.Hex())
	}
}

func TestStringArray2ObjectIDArray(t *testing.T) {
	a, b := primitive.NewObjectID(), primitive.NewObjectID()
	got := StringArray2ObjectIDArray([]string{a.Hex(), b.Hex()})
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("StringArray2ObjectIDArray = %v, mong đợi [%s %s]", got, a.Hex(), b.Hex())
	}
}

func TestContains(t *testing.T) {
	keys := []string{"query", "where", "options"}
	if !Contains(keys, "where") {
		t.Error("Contains phải tìm thấy 'where'")
	}
	if Contains(keys, "filter") {
		t.Error("Contains không được tìm thấy 'filter'")
	}
}

func TestConvertStruct(t *testing.T) {
	type source struct {
		Title   string `json:"title"`
		OwnerID string `json:"ownerId"`
	}
	type target struct {
		Title   string             `json:"title"`
		OwnerID primitive.ObjectID `json:"ownerId"`
	}

	ownerID := primitive.NewObjectID()
	var got target
	if err := ConvertStruct(source{Title: "chuyển đổi", OwnerID: ownerID.Hex()}, &got); err != nil {
		t.Fatalf("ConvertStruct trả về lỗi không mong đợi: %v", err)
	}
	if got.Title != "chuyển đổi" {
		t.Errorf("Title = %q, mong đợi 'chuyển đổi'", got.Title)
	}
	if got.OwnerID != ownerID {
		t.Errorf("OwnerID = %s, mong đợi %s (chuỗi hex phải unmarshal thành ObjectID)", got.OwnerID.Hex(), ownerID.Hex())
	}
}
