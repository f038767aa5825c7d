// msavariants: a parallel variant caller for multiple sequence alignments.
// Copyright (c) 2021 the msavariants authors.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/asklepian/msavariants/blob/master/LICENSE.txt>.

package vcf

import (
	"bufio"
	"errors"
	"strconv"
)

// FormatString outputs a string to a VCF file, adding necessary double quotes and escapes
func FormatString(out *bufio.Writer, str string) error {
	_ = out.WriteByte('"')
	for i := 0; i < len(str); i++ {
		b := str[i]
		if b == '"' || b == '\\' {
			_ = out.WriteByte('\\')
		}
		_ = out.WriteByte(b)
	}
	return out.WriteByte('"')
}

func needsQuotes(s string) bool {
	for i := 0; i < len(s); i++ {
		if ch := s[i]; ch == '"' || ch == ' ' || ch == ',' {
			return true
		}
	}
	return false
}

// FormatMetaInformation outputs VCF meta information, which can be just a string or *MetaInformation
func FormatMetaInformation(out *bufio.Writer, meta interface{}) error {
	switch m := meta.(type) {
	case string:
		_, _ = out.WriteString(m)
		return out.WriteByte('\n')
	case *MetaInformation:
		_, _ = out.WriteString("<ID=")
		_, _ = out.WriteString(m.ID)
		for _, field := range m.Fields {
			_ = out.WriteByte(',')
			_, _ = out.WriteString(field.Key)
			_ = out.WriteByte('=')
			if needsQuotes(field.Value) {
				_ = FormatString(out, field.Value)
			} else {
				_, _ = out.WriteString(field.Value)
			}
		}
		if m.Description != "" {
			_, _ = out.WriteString(",Description=")
			_ = FormatString(out, m.Description)
		}
		_, err := out.WriteString(">\n")
		return err
	default:
		return errors.New("invalid MetaInformation type")
	}
}

// FormatFormatInformation outputs VCF info information
func FormatFormatInformation(out *bufio.Writer, format *FormatInformation) error {
	_, _ = out.WriteString("<ID=")
	_, _ = out.WriteString(format.ID)
	if format.Number < 0 {
		return errors.New("invalid Number in a VCF meta-information line")
	}
	_, _ = out.WriteString(",Number=")
	_, _ = out.WriteString(strconv.FormatInt(int64(format.Number), 10))
	_, _ = out.WriteString(",Type=")
	switch format.Type {
	case Integer:
		_, _ = out.WriteString("Integer")
	case String:
		_, _ = out.WriteString("String")
	default:
		return errors.New("invalid Type in a VCF meta-information line")
	}
	if format.Description != "" {
		_, _ = out.WriteString(",Description=")
		_ = FormatString(out, format.Description)
	}
	_, err := out.WriteString(">\n")
	return err
}

// Format outputs a VCF header
func (header *Header) Format(out *bufio.Writer) (err error) {
	_, _ = out.WriteString(header.FileFormat)
	_ = out.WriteByte('\n')
	for _, meta := range header.Meta {
		_, _ = out.WriteString("##")
		_, _ = out.WriteString(meta.Key)
		_ = out.WriteByte('=')
		if err := FormatMetaInformation(out, meta.Value); err != nil {
			return err
		}
	}
	for _, info := range header.Infos {
		_, _ = out.WriteString("##INFO=")
		if err := FormatFormatInformation(out, info); err != nil {
			return err
		}
	}
	_ = out.WriteByte('#')
	if len(header.Columns) > 0 {
		_, _ = out.WriteString(header.Columns[0])
		for _, col := range header.Columns[1:] {
			_ = out.WriteByte('\t')
			_, _ = out.WriteString(col)
		}
	}
	return out.WriteByte('\n')
}

func formatStringList(out []byte, list []string, separator byte) []byte {
	if len(list) == 0 {
		return append(out, '.', '\t')
	}
	out = append(out, list[0]...)
	for _, entry := range list[1:] {
		out = append(out, separator)
		out = append(out, entry...)
	}
	return append(out, '\t')
}

func formatInfoEntry(out []byte, entry InfoEntry) ([]byte, error) {
	out = append(append(out, entry.Key...), '=')
	switch v := entry.Value.(type) {
	case int:
		return strconv.AppendInt(out, int64(v), 10), nil
	case string:
		return append(out, v...), nil
	default:
		return nil, errors.New("invalid value type")
	}
}

func formatInfo(out []byte, info []InfoEntry) ([]byte, error) {
	if len(info) == 0 {
		return append(out, '.'), nil
	}
	var err error
	out, err = formatInfoEntry(out, info[0])
	if err != nil {
		return nil, err
	}
	for _, entry := range info[1:] {
		out = append(out, ';')
		out, err = formatInfoEntry(out, entry)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Format appends a VCF variant line to out.
func (variant *Variant) Format(out []byte) ([]byte, error) {
	out = append(append(out, variant.Chrom...), '\t')
	if variant.Pos < 0 {
		out = append(out, '.', '\t')
	} else {
		out = append(strconv.AppendInt(out, int64(variant.Pos), 10), '\t')
	}
	out = append(out, '.', '\t')
	out = append(append(out, variant.Ref...), '\t')
	out = formatStringList(out, variant.Alt, ',')
	out = append(out, '.', '\t', '.', '\t')
	var err error
	out, err = formatInfo(out, variant.Info)
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}
