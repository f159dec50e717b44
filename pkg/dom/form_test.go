package dom

import "testing"

func TestInputValue(t *testing.T) {
	in := Input(Type("text"), Value("default"))
	if in.Value() != "default" {
		t.Errorf("Value() = %q, want default", in.Value())
	}
	in.SetValue("edited")
	if in.Value() != "edited" {
		t.Errorf("Value() = %q, want edited", in.Value())
	}
	if in.Attribute("value") != "default" {
		t.Error("SetValue must not change the value attribute of a text input")
	}
}

func TestCheckboxValueDefaultsToOn(t *testing.T) {
	cb := Input(Type("checkbox"))
	if cb.Value() != "on" {
		t.Errorf("Value() = %q, want on", cb.Value())
	}
	cb.SetValue("a")
	if cb.Attribute("value") != "a" {
		t.Error("checkbox SetValue should set the value attribute")
	}
}

func TestCheckedDefaultsToAttribute(t *testing.T) {
	cb := Input(Type("checkbox"), Checked())
	if !cb.Checked() {
		t.Error("Checked() = false, want true")
	}
	cb.SetChecked(false)
	if cb.Checked() {
		t.Error("Checked() = true after SetChecked(false)")
	}
}

func TestRadioGroupExclusive(t *testing.T) {
	a := Input(Type("radio"), Name("g"), Value("a"))
	b := Input(Type("radio"), Name("g"), Value("b"))
	Form(a, b)

	a.SetChecked(true)
	b.SetChecked(true)
	if a.Checked() || !b.Checked() {
		t.Errorf("a=%v b=%v, want a unchecked and b checked", a.Checked(), b.Checked())
	}
}

func TestClickTogglesCheckbox(t *testing.T) {
	cb := Input(Type("checkbox"))
	clicks := 0
	cb.AddEventListener(EventClick, func(*Event) { clicks++ })
	cb.Click()
	if !cb.Checked() || clicks != 1 {
		t.Errorf("Checked()=%v clicks=%d, want true 1", cb.Checked(), clicks)
	}
}

func TestSelectValue(t *testing.T) {
	sel := Select(
		Option("one"),
		Option(Value("2"), "two"),
	)
	if sel.Value() != "one" {
		t.Errorf("default Value() = %q, want one", sel.Value())
	}
	sel.SetValue("2")
	if sel.Value() != "2" || sel.SelectedIndex() != 1 {
		t.Errorf("Value() = %q idx=%d, want 2 1", sel.Value(), sel.SelectedIndex())
	}
	sel.SetValue("missing")
	if sel.Value() != "" || sel.SelectedIndex() != -1 {
		t.Errorf("Value() = %q, want empty after selecting missing value", sel.Value())
	}
}

func TestSelectHonorsSelectedAttribute(t *testing.T) {
	sel := Select(Option("a"), Option("b", Selected()))
	if sel.Value() != "b" {
		t.Errorf("Value() = %q, want b", sel.Value())
	}
}

func TestTextAreaValue(t *testing.T) {
	ta := TextArea("initial")
	if ta.Value() != "initial" {
		t.Errorf("Value() = %q, want initial", ta.Value())
	}
	ta.SetValue("changed")
	if ta.Value() != "changed" {
		t.Errorf("Value() = %q, want changed", ta.Value())
	}
}

func TestGenericElementValueIsScriptState(t *testing.T) {
	d := Div()
	d.SetValue("x")
	if d.Value() != "x" {
		t.Errorf("Value() = %q, want x", d.Value())
	}
}
