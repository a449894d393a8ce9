package export

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/AkapongAlone/set-dividend/internal/pipeline"
)

// WriteFailures เขียนข้อผิดพลาดของแต่ละหุ้น บรรทัดละหนึ่งรายการ
func WriteFailures(w io.Writer, at time.Time, failures []pipeline.Failure) error {
	if _, err := fmt.Fprintf(w, "--- ข้อผิดพลาดในการดึงข้อมูลวันที่ %s ---\n", at.Format("2006-01-02 15:04:05")); err != nil {
		return err
	}
	for _, f := range failures {
		if _, err := fmt.Fprintf(w, "%s [%s]: %v\n", f.Symbol, f.Stage, f.Err); err != nil {
			return err
		}
	}
	return nil
}

// WriteFailureLog บันทึกข้อผิดพลาดลงไฟล์ ไม่สร้างไฟล์ถ้าไม่มีข้อผิดพลาด
func WriteFailureLog(path string, at time.Time, failures []pipeline.Failure) error {
	if len(failures) == 0 || path == "" {
		return nil
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ไม่สามารถสร้างไฟล์ log: %w", err)
	}
	defer file.Close()

	if err := WriteFailures(file, at, failures); err != nil {
		return err
	}
	return file.Close()
}
