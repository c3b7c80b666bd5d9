package qbloch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestConfig(t *testing.T) {
	Convey("Given the default config", t, func() {
		config := NewConfig()

		Convey("It should carry the standard animation settings", func() {
			So(config.RotationDuration, ShouldEqual, 750*time.Millisecond)
			So(config.PathResolution, ShouldEqual, 64)
			So(config.FrameInterval, ShouldEqual, DefaultFrameInterval)
			So(config.ShowEstimates, ShouldBeFalse)
			So(config.Validate(), ShouldBeNil)
		})
	})

	Convey("Given a YAML file", t, func() {
		dir := t.TempDir()
		write := func(body string) string {
			path := filepath.Join(dir, "qbloch.yaml")
			So(os.WriteFile(path, []byte(body), 0o600), ShouldBeNil)
			return path
		}

		Convey("Values present in the file should override the defaults", func() {
			config, err := LoadConfig(write("rotation_duration: 500ms\npath_resolution: 32\nshow_estimates: true\n"))

			So(err, ShouldBeNil)
			So(config.RotationDuration, ShouldEqual, 500*time.Millisecond)
			So(config.PathResolution, ShouldEqual, 32)
			So(config.ShowEstimates, ShouldBeTrue)
			So(config.FrameInterval, ShouldEqual, DefaultFrameInterval)
			So(config.Shots, ShouldEqual, DefaultShots)
		})

		Convey("Invalid values should be rejected", func() {
			_, err := LoadConfig(write("path_resolution: 0\n"))
			So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)

			_, err = LoadConfig(write("rotation_duration: -1s\n"))
			So(errors.Is(err, ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("Malformed YAML should fail to parse", func() {
			_, err := LoadConfig(write("rotation_duration: [\n"))
			So(err, ShouldNotBeNil)
		})

		Convey("A missing file should fail", func() {
			_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
			So(err, ShouldNotBeNil)
		})
	})
}
