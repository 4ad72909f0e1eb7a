package model

import (
	"encoding/json"
	"testing"
)

func TestIndicatorValue_MarshalScalar(t *testing.T) {
	data, err := json.Marshal(Scalar(45.5))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "45.5" {
		t.Errorf("scalar should encode as a bare number, got %s", data)
	}
}

func TestIndicatorValue_MarshalComposite(t *testing.T) {
	v := Composite(map[string]float64{"line": 1.5, "signal": -0.5, "histogram": 2})
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]float64
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("composite should encode as an object: %v", err)
	}
	if decoded["line"] != 1.5 || decoded["signal"] != -0.5 || decoded["histogram"] != 2 {
		t.Errorf("unexpected members: %v", decoded)
	}
}

func TestComposite_CopiesInput(t *testing.T) {
	src := map[string]float64{"upper": 110}
	v := Composite(src)
	src["upper"] = 999
	if v.Field("upper") != 110 {
		t.Error("composite must copy the input map")
	}
}

func TestIndicatorValue_Accessors(t *testing.T) {
	s := Scalar(7)
	if s.IsComposite() || s.Scalar() != 7 || s.Fields() != nil {
		t.Errorf("unexpected scalar accessors: %+v", s)
	}
	c := Composite(map[string]float64{"b": 2, "a": 1})
	if !c.IsComposite() {
		t.Error("expected composite")
	}
	names := c.FieldNames()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("FieldNames should be sorted, got %v", names)
	}
}
