package billionaire

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/wdm0006/billclean/internal/testutil"
)

func TestRosterCleaning(t *testing.T) {
	convey.Convey("Given a roster with gaps and a bad age literal", t, func() {
		in := writeInput(t, "Warren Buffett,78,United States,United States,37.0,2\n"+
			",56/58,X,,1.0,5\n"+
			"Ghost,40,Y,Y,,9\n"+
			"Nemo,,United States,,2.5,10\n")
		out := filepath.Join(t.TempDir(), "roster_cleaned.csv")

		convey.Convey("Cleaning writes only complete rows", func() {
			rep, err := Clean(context.Background(), in, out, testutil.NewTestLogger(t))
			convey.So(err, convey.ShouldBeNil)
			convey.So(rep.RowsRead, convey.ShouldEqual, 4)
			convey.So(rep.RowsWritten, convey.ShouldEqual, 3)
			convey.So(rep.RowsDropped, convey.ShouldEqual, 1)

			recs := readOutput(t, out)
			convey.So(len(recs), convey.ShouldEqual, 4)

			convey.Convey("The repaired row gets sentinels and age 57", func() {
				convey.So(recs[2], convey.ShouldResemble, []string{"Unknown", "57", "X", "Unknown", "1.0", "5"})
			})

			convey.Convey("The missing age takes its citizenship mean", func() {
				convey.So(recs[3], convey.ShouldResemble, []string{"Nemo", "78", "United States", "Unknown", "2.5", "10"})
			})
		})

		convey.Convey("A nonexistent source leaves no output behind", func() {
			_, err := Clean(context.Background(), in+".missing", out, testutil.NewTestLogger(t))
			convey.So(errors.Is(err, ErrSourceNotFound), convey.ShouldBeTrue)
			_, statErr := os.Stat(out)
			convey.So(os.IsNotExist(statErr), convey.ShouldBeTrue)
		})
	})
}
