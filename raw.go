// FILE: lixenwraith/confchain/raw.go
package confchain

// rawValue is a literal. It is always set, even when empty.
type rawValue string

func (v rawValue) IsSet() bool {
	return true
}

func (v rawValue) Get() (string, error) {
	return string(v), nil
}

func (v rawValue) Read() (string, error) {
	return string(v), nil
}

func (v rawValue) Kind() Kind {
	return KindRaw
}

func (v rawValue) String() string {
	return string(KindRaw) + ":" + string(v)
}
