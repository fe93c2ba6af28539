// FILE: lixenwraith/confchain/codec/xml.go
package codec

import (
	"encoding/xml"
	"fmt"

	"github.com/clbanning/mxj/v2"
)

// XMLRootTag wraps generic trees encoded as XML
const XMLRootTag = "document"

// marshalXML encodes generic trees through mxj and anything else through encoding/xml
func marshalXML(v any, pretty bool) ([]byte, error) {
	if m, ok := v.(map[string]any); ok {
		if pretty {
			return mxj.Map(m).XmlIndent("", "  ", XMLRootTag)
		}
		return mxj.Map(m).Xml(XMLRootTag)
	}

	if pretty {
		return xml.MarshalIndent(v, "", "  ")
	}
	return xml.Marshal(v)
}

// parseXML returns the children of the root element as a tree.
// Element text is kept as strings; attributes appear under "-name" keys.
func parseXML(data []byte) (any, error) {
	m, err := mxj.NewMapXml(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}

	if len(m) == 1 {
		for _, root := range m {
			if children, ok := root.(map[string]any); ok {
				return children, nil
			}
		}
	}
	return map[string]any(m), nil
}
