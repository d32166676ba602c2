package projection_test

import (
	"strings"
	"testing"

	"github.com/ems-iodt/twinscale-api-types/things"
	"github.com/ems-iodt/twinscale/pkg/twin/projection"
)

func sensorDraft() things.ThingSpec {
	return things.ThingSpec{
		ID:        "TempSensor01",
		Name:      "Office Temp",
		ThingType: things.Sensor,
		Properties: []things.Property{
			{
				Name:     "temperature",
				Schema:   things.Schema{Type: "float"},
				Writable: true,
				Unit:     "C",
			},
		},
		Relationships: []things.Relationship{},
		Commands:      []things.Command{},
	}
}

func TestInterface(t *testing.T) {

	t.Run("it renders the worked example verbatim", func(t *testing.T) {
		got, err := projection.Interface(sensorDraft(), "acme")
		if err != nil {
			t.Fatal(err)
		}

		want := `apiVersion: dtd.twinscale/v0
kind: TwinInterface
metadata:
  name: ems-iodt2-tempsensor01
  labels:
    tenant: acme
    thing-type: sensor
spec:
  name: ems-iodt2-tempsensor01
  properties:
    - name: temperature
      type: float
      description: ""
      x-writable: true
  relationships: []
  commands: []
`
		if got != want {
			t.Errorf("\n===got===\n%s\n===want===\n%s", got, want)
		}
	})

	t.Run("it is byte-stable across calls", func(t *testing.T) {
		draft := sensorDraft()

		first, err := projection.Interface(draft, "acme")
		if err != nil {
			t.Fatal(err)
		}
		second, err := projection.Interface(draft, "acme")
		if err != nil {
			t.Fatal(err)
		}

		if first != second {
			t.Errorf("outputs differ:\n%s\n---\n%s", first, second)
		}
	})

	t.Run("without a tenant, the labels block starts at thing-type", func(t *testing.T) {
		got, err := projection.Interface(sensorDraft(), "")
		if err != nil {
			t.Fatal(err)
		}

		want := "  labels:\n    thing-type: sensor\n"
		if !strings.Contains(got, want) {
			t.Errorf("labels block missing or wrong:\n%s", got)
		}
		if strings.Contains(got, "tenant:") {
			t.Errorf("tenant label leaked into tenantless output:\n%s", got)
		}
	})

	t.Run("empty drafts keep their list keys with [] values", func(t *testing.T) {
		draft := things.ThingSpec{ID: "bare", Name: "Bare"}

		got, err := projection.Interface(draft, "acme")
		if err != nil {
			t.Fatal(err)
		}

		for _, want := range []string{
			"  properties: []\n",
			"  relationships: []\n",
			"  commands: []\n",
		} {
			if !strings.Contains(got, want) {
				t.Errorf("missing %q in:\n%s", want, got)
			}
		}
	})

	t.Run("the thing type label defaults to device", func(t *testing.T) {
		draft := things.ThingSpec{ID: "x", Name: "X"}

		got, err := projection.Interface(draft, "")
		if err != nil {
			t.Fatal(err)
		}

		if !strings.Contains(got, "thing-type: device\n") {
			t.Errorf("default thing type not rendered:\n%s", got)
		}
	})

	t.Run("empty string fields render quoted, never as null", func(t *testing.T) {
		draft := things.ThingSpec{
			ID:   "dev",
			Name: "Dev",
			Properties: []things.Property{
				{Name: "status"},
			},
			Commands: []things.Command{
				{Name: "reboot"},
			},
		}

		got, err := projection.Interface(draft, "")
		if err != nil {
			t.Fatal(err)
		}

		for _, want := range []string{
			"      type: \"\"\n",
			"      description: \"\"\n",
			"    - name: reboot\n      description: \"\"\n",
		} {
			if !strings.Contains(got, want) {
				t.Errorf("missing %q in:\n%s", want, got)
			}
		}
	})

	t.Run("relationship descriptions are not rendered", func(t *testing.T) {
		draft := things.ThingSpec{
			ID:   "dev",
			Name: "Dev",
			Relationships: []things.Relationship{
				{Name: "locatedIn", TargetInterface: "ems-iodt2-room", Description: "not shown"},
			},
		}

		got, err := projection.Interface(draft, "")
		if err != nil {
			t.Fatal(err)
		}

		if !strings.Contains(got, "    - name: locatedIn\n      interface: ems-iodt2-room\n") {
			t.Errorf("relationship block wrong:\n%s", got)
		}
		if strings.Contains(got, "not shown") {
			t.Errorf("relationship description leaked into output:\n%s", got)
		}
	})
}

func TestInterface_Annotations(t *testing.T) {

	t.Run("all four empty: no annotations key at all", func(t *testing.T) {
		got, err := projection.Interface(sensorDraft(), "acme")
		if err != nil {
			t.Fatal(err)
		}

		if strings.Contains(got, "annotations") {
			t.Errorf("annotations rendered for empty metadata:\n%s", got)
		}
	})

	t.Run("only non-empty fields are rendered, double quoted, in order", func(t *testing.T) {
		draft := sensorDraft()
		draft.Manufacturer = "Bosch"
		draft.FirmwareVersion = "2.1.0"

		got, err := projection.Interface(draft, "acme")
		if err != nil {
			t.Fatal(err)
		}

		want := "  annotations:\n    manufacturer: \"Bosch\"\n    firmwareVersion: \"2.1.0\"\n"
		if !strings.Contains(got, want) {
			t.Errorf("annotations block wrong, want %q in:\n%s", want, got)
		}
		if strings.Contains(got, "model") || strings.Contains(got, "serialNumber") {
			t.Errorf("empty annotation fields leaked:\n%s", got)
		}
	})

	t.Run("all four set renders the full block", func(t *testing.T) {
		draft := sensorDraft()
		draft.Manufacturer = "Bosch"
		draft.Model = "BME280"
		draft.SerialNumber = "SN-0042"
		draft.FirmwareVersion = "2.1.0"

		got, err := projection.Interface(draft, "acme")
		if err != nil {
			t.Fatal(err)
		}

		want := `  annotations:
    manufacturer: "Bosch"
    model: "BME280"
    serialNumber: "SN-0042"
    firmwareVersion: "2.1.0"
`
		if !strings.Contains(got, want) {
			t.Errorf("annotations block wrong:\n%s", got)
		}
	})
}

func TestInstance(t *testing.T) {

	t.Run("it renders the instance document verbatim", func(t *testing.T) {
		got, err := projection.Instance(sensorDraft(), "acme")
		if err != nil {
			t.Fatal(err)
		}

		want := `apiVersion: dtd.twinscale/v0
kind: TwinInstance
metadata:
  name: ems-iodt2-tempsensor01
  labels:
    tenant: acme
    thing-type: sensor
spec:
  name: ems-iodt2-tempsensor01
  interface: ems-iodt2-tempsensor01
  twinInstanceRelationships: []
`
		if got != want {
			t.Errorf("\n===got===\n%s\n===want===\n%s", got, want)
		}
	})

	t.Run("annotations never appear, even when metadata is set", func(t *testing.T) {
		draft := sensorDraft()
		draft.Manufacturer = "Bosch"

		got, err := projection.Instance(draft, "acme")
		if err != nil {
			t.Fatal(err)
		}

		if strings.Contains(got, "annotations") {
			t.Errorf("instance document rendered annotations:\n%s", got)
		}
	})
}

func TestDocuments(t *testing.T) {
	iface, instance, err := projection.Documents(sensorDraft(), "acme")
	if err != nil {
		t.Fatal(err)
	}

	wantIface, err := projection.Interface(sensorDraft(), "acme")
	if err != nil {
		t.Fatal(err)
	}
	wantInstance, err := projection.Instance(sensorDraft(), "acme")
	if err != nil {
		t.Fatal(err)
	}

	if iface != wantIface {
		t.Error("interface document differs from a direct render")
	}
	if instance != wantInstance {
		t.Error("instance document differs from a direct render")
	}
}
