package response

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"prtgctl/data/model"
)

// FormInputs collects the name/value pairs of the <input>, <select> and
// <textarea> fields of an HTML form. Radio buttons and checkboxes only
// contribute when checked.
func FormInputs(body []byte) (map[string]string, error) {
	inputs := map[string]string{}
	z := html.NewTokenizer(bytes.NewReader(body))

	var selectName, textareaName string
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); err != nil && !errors.Is(err, io.EOF) {
				return nil, err
			}
			return inputs, nil

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			attrs := attrMap(tok.Attr)
			switch tok.Data {
			case "input":
				name := attrs["name"]
				if name == "" {
					continue
				}
				if t := strings.ToLower(attrs["type"]); t == "radio" || t == "checkbox" {
					if _, checked := attrs["checked"]; !checked {
						continue
					}
				}
				inputs[name] = attrs["value"]
			case "select":
				selectName = attrs["name"]
			case "option":
				if _, selected := attrs["selected"]; selected && selectName != "" {
					inputs[selectName] = attrs["value"]
				}
			case "textarea":
				textareaName = attrs["name"]
				if textareaName != "" {
					inputs[textareaName] = ""
				}
			}

		case html.TextToken:
			if textareaName != "" {
				inputs[textareaName] += string(z.Text())
			}

		case html.EndTagToken:
			switch tok := z.Token(); tok.Data {
			case "select":
				selectName = ""
			case "textarea":
				textareaName = ""
			}
		}
	}
}

func attrMap(attrs []html.Attribute) map[string]string {
	m := make(map[string]string, len(attrs))
	for _, a := range attrs {
		m[a.Key] = a.Val
	}
	return m
}

// ChannelSettings reads the limit state of a channel from its
// controls/channeledit.htm page.
func ChannelSettings(body []byte, sensorID, channelID int) (*model.Channel, error) {
	inputs, err := FormInputs(body)
	if err != nil {
		return nil, err
	}

	ch := model.NewChannel(channelID, sensorID)
	suffix := "_" + strconv.Itoa(channelID)

	ch.Name = inputs["name"+suffix]
	ch.UpperErrorLimit = limitValue(inputs["limitmaxerror"+suffix])
	ch.LowerErrorLimit = limitValue(inputs["limitminerror"+suffix])
	ch.UpperWarningLimit = limitValue(inputs["limitmaxwarning"+suffix])
	ch.LowerWarningLimit = limitValue(inputs["limitminwarning"+suffix])
	ch.ErrorLimitMessage = inputs["limiterrormsg"+suffix]
	ch.WarningLimitMessage = inputs["limitwarningmsg"+suffix]
	ch.LimitsEnabled = inputs["limitmode"+suffix] == "1"

	for _, field := range []string{"limitmaxerror", "limitminerror", "limitmaxwarning", "limitminwarning"} {
		if f := strings.TrimSpace(inputs[field+suffix+"_factor"]); f != "" {
			ch.Factor = f
			break
		}
	}
	return ch, nil
}

// limitValue parses a threshold field. Empty fields mean no limit; PRTG
// may render the value with a decimal comma.
func limitValue(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return nil
	}
	return &f
}
