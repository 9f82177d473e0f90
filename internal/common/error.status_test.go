package common

import (
	"errors"
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
)

func TestErrorIsSoSanhTheoCodeVaMessage(t *testing.T) {
	if !errors.Is(ErrNotFound, ErrNotFound) {
		t.Error("errors.Is phải nhận diện chính sentinel của nó")
	}

	wrapped := fmt.Errorf("tầng service: %w", ErrNotFound)
	if !errors.Is(wrapped, ErrNotFound) {
		t.Error("errors.Is phải xuyên qua lớp wrap của fmt.Errorf")
	}

	if errors.Is(ErrNotFound, ErrDuplicate) {
		t.Error("Hai sentinel khác nhau không được coi là bằng nhau")
	}
}

func TestConvertMongoError(t *testing.T) {
	if got := ConvertMongoError(nil); got != nil {
		t.Errorf("nil phải trả về nil, nhận được %v", got)
	}

	if got := ConvertMongoError(mongo.ErrNoDocuments); !errors.Is(got, ErrNotFound) {
		t.Errorf("ErrNoDocuments phải được chuyển thành ErrNotFound, nhận được %v", got)
	}

	if got := ConvertMongoError(ErrNotFound); !errors.Is(got, ErrNotFound) {
		t.Errorf("ErrNotFound phải được giữ nguyên, nhận được %v", got)
	}

	// Lỗi hệ thống đã chuyển đổi trước đó được giữ nguyên
	if got := ConvertMongoError(ErrMongoDuplicate); !errors.Is(got, ErrMongoDuplicate) {
		t.Errorf("Lỗi hệ thống phải được giữ nguyên, nhận được %v", got)
	}

	// Lỗi lạ: message gốc phải được truyền nguyên vẹn, status 500
	raw := errors.New("connection reset by peer")
	got := ConvertMongoError(raw)
	var appErr *Error
	if !errors.As(got, &appErr) {
		t.Fatalf("Lỗi lạ phải được bọc thành *Error, nhận được %T", got)
	}
	if appErr.Message != raw.Error() {
		t.Errorf("Message = %q, mong đợi message gốc %q", appErr.Message, raw.Error())
	}
	if appErr.StatusCode != StatusInternalServerError {
		t.Errorf("StatusCode = %d, mong đợi %d", appErr.StatusCode, StatusInternalServerError)
	}
}

func TestRateLimitMessage(t *testing.T) {
	// Message này là contract cố định với client, không được đổi
	want := "Rate limit exceeded, please try again after 30 minutes"
	if MsgTooManyRequests != want {
		t.Errorf("MsgTooManyRequests = %q, mong đợi %q", MsgTooManyRequests, want)
	}
}

func TestSentinelStatusCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"ErrNotFound", ErrNotFound, StatusNotFound},
		{"ErrDuplicate", ErrDuplicate, StatusConflict},
		{"ErrTokenMissing", ErrTokenMissing, StatusUnauthorized},
		{"ErrInvalidInput", ErrInvalidInput, StatusBadRequest},
		{"ErrMissingParam", ErrMissingParam, StatusBadRequest},
	}

	for _, tc := range cases {
		var appErr *Error
		if !errors.As(tc.err, &appErr) {
			t.Errorf("%s phải là *Error", tc.name)
			continue
		}
		if appErr.StatusCode != tc.want {
			t.Errorf("%s StatusCode = %d, mong đợi %d", tc.name, appErr.StatusCode, tc.want)
		}
	}
}
