package registry

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestRegisterAndGet(t *testing.T) {
	r := NewRegistry[string]()

	isNew, err := r.Register("orders", "orders-collection")
	if err != nil {
		t.Fatalf("Register trả về lỗi không mong đợi: %v", err)
	}
	if !isNew {
		t.Error("Register lần đầu phải trả về isNew = true")
	}

	item, exists := r.Get("orders")
	if !exists {
		t.Fatal("Get phải tìm thấy item vừa đăng ký")
	}
	if item != "orders-collection" {
		t.Errorf("Get = %q, mong đợi 'orders-collection'", item)
	}

	if _, exists := r.Get("customers"); exists {
		t.Error("Get với tên chưa đăng ký phải trả về exists = false")
	}
}

func TestRegisterOverwrite(t *testing.T) {
	r := NewRegistry[int]()

	_, _ = r.Register("counter", 1)
	isNew, err := r.Register("counter", 2)
	if err != nil {
		t.Fatalf("Register trả về lỗi không mong đợi: %v", err)
	}
	if isNew {
		t.Error("Register ghi đè phải trả về isNew = false")
	}

	item, _ := r.Get("counter")
	if item != 2 {
		t.Errorf("Get = %d, mong đợi giá trị mới 2", item)
	}
}

func TestRegisterEmptyName(t *testing.T) {
	r := NewRegistry[string]()

	if _, err := r.Register("", "x"); err == nil {
		t.Error("Register với name rỗng phải trả về lỗi")
	}
}

func TestClearWithCleanup(t *testing.T) {
	r := NewRegistry[string]()
	_, _ = r.Register("orders", "orders-collection")

	cleaned := false
	deleted, err := r.Clear("orders", func(item string) error {
		cleaned = true
		return nil
	})
	if err != nil {
		t.Fatalf("Clear trả về lỗi không mong đợi: %v", err)
	}
	if !deleted {
		t.Error("Clear phải trả về deleted = true khi item tồn tại")
	}
	if !cleaned {
		t.Error("Cleanup function phải được gọi trước khi xóa")
	}
	if _, exists := r.Get("orders"); exists {
		t.Error("Item phải bị xóa khỏi registry sau Clear")
	}

	deleted, err = r.Clear("orders", nil)
	if err != nil || deleted {
		t.Error("Clear item không tồn tại phải trả về deleted = false, không lỗi")
	}
}

func TestClearCleanupFailureKeepsItem(t *testing.T) {
	r := NewRegistry[string]()
	_, _ = r.Register("orders", "orders-collection")

	cleanupErr := errors.New("đang được sử dụng")
	deleted, err := r.Clear("orders", func(item string) error {
		return cleanupErr
	})
	if err == nil || deleted {
		t.Error("Clear phải thất bại khi cleanup trả về lỗi")
	}
	if _, exists := r.Get("orders"); !exists {
		t.Error("Item không được xóa khi cleanup thất bại")
	}
}

func TestConcurrentAccess(t *testing.T) {
	r := NewRegistry[int]()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			name := fmt.Sprintf("item-%d", n)
			_, _ = r.Register(name, n)
			_, _ = r.Get(name)
			_ = r.Names()
		}(i)
	}
	wg.Wait()

	if len(r.Names()) != 50 {
		t.Errorf("Names = %d items, mong đợi 50", len(r.Names()))
	}
}
