package coding

import (
	"testing"

	"codinglint/internal/diag"
)

func TestDeclaration(t *testing.T) {
	tests := []struct {
		line string
		want string
		ok   bool
	}{
		{"# -*- coding: utf-8 -*-\n", "utf-8", true},
		{"# vim: set fileencoding=latin-1 :\n", "latin-1", true},
		{"# CODING: UTF-8\n", "UTF-8", true},
		{"# cod\u0131ng: latin-1\n", "latin-1", true},
		{"# COD\u0130NG: latin-1\n", "latin-1", true},
		{"#coding:utf_8.x\n", "utf_8.x", true},
		{"# coding:\tcp1252\n", "cp1252", true},
		{"# coding=  iso-8859-15\n", "iso-8859-15", true},
		{"# coding: \n", "", false},
		{"# coding utf-8\n", "", false},
		{"print('hello')\n", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := Declaration(tt.line)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Declaration(%q) = %q, %v; want %q, %v", tt.line, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCheck(t *testing.T) {
	allow := DefaultConfig()
	allowOptional := NewConfig(DefaultAcceptEncodings, false, true)
	forbid := NewConfig(DefaultAcceptEncodings, true, false)

	tests := []struct {
		name     string
		cfg      Config
		lines    []string
		wantCode diag.Code
		wantLine uint32
	}{
		{"empty file", allow, nil, 0, 0},
		{"empty file no-accept", forbid, nil, 0, 0},
		{"accepted on line 1", allow, []string{"# -*- coding: utf-8 -*-\n", "x = 1\n"}, 0, 0},
		{"accepted on line 2", allow, []string{"#!/usr/bin/python\n", "# coding: latin-1\n"}, 0, 0},
		{"accepted case insensitive", allow, []string{"# coding: UTF-8\n"}, 0, 0},
		{"unknown on line 1", allow, []string{"# coding: cp1252\n"}, diag.CodingUnknownEncoding, 1},
		{"unknown on line 2", allow, []string{"#!/bin/sh\n", "# coding: koi8-r\n"}, diag.CodingUnknownEncoding, 2},
		{"first match wins", allow, []string{"# coding: utf-8\n", "# coding: cp1252\n"}, 0, 0},
		{"first match wins unknown", allow, []string{"# coding: cp1252\n", "# coding: utf-8\n"}, diag.CodingUnknownEncoding, 1},
		{"third line ignored", allow, []string{"a = 1\n", "b = 2\n", "# coding: utf-8\n"}, diag.CodingNotFound, 1},
		{"missing", allow, []string{"x = 1\n"}, diag.CodingNotFound, 1},
		{"missing ascii optional", allowOptional, []string{"x = 1\n", "y = 2\n"}, 0, 0},
		{"missing non-ascii optional", allowOptional, []string{"x = 1\n", "y = 2\n", "s = 'é'\n"}, diag.CodingNotFound, 1},
		{"no-accept present", forbid, []string{"x\n", "# coding: utf-8\n"}, diag.CodingPresent, 2},
		{"no-accept present even if allowed", forbid, []string{"# coding: latin-1\n"}, diag.CodingPresent, 1},
		{"no-accept absent", forbid, []string{"s = 'é'\n"}, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := Check(tt.cfg, tt.lines)
			if tt.wantCode == 0 {
				if ok {
					t.Fatalf("unexpected diagnostic %s at line %d", d.Code.ID(), d.Loc.Line)
				}
				return
			}
			if !ok {
				t.Fatalf("expected %s, got nothing", tt.wantCode.ID())
			}
			if d.Code != tt.wantCode || d.Loc.Line != tt.wantLine || d.Loc.Col != 0 {
				t.Fatalf("got %s at %d:%d, want %s at %d:0", d.Code.ID(), d.Loc.Line, d.Loc.Col, tt.wantCode.ID(), tt.wantLine)
			}
			if d.Message != tt.wantCode.Title() {
				t.Fatalf("message = %q", d.Message)
			}
		})
	}
}

func TestCheckEmptyAllowList(t *testing.T) {
	cfg := NewConfig(" , ,", false, false)
	if cfg.Mode() != ModeAllowList {
		t.Fatalf("mode = %v", cfg.Mode())
	}
	d, ok := Check(cfg, []string{"# coding: utf-8\n"})
	if !ok || d.Code != diag.CodingUnknownEncoding {
		t.Fatalf("every declaration must be unknown with an empty allow-list, got %v %v", d.Code, ok)
	}
}

func TestHasNonASCII(t *testing.T) {
	if hasNonASCII([]string{"plain\n", "\x7f\n"}) {
		t.Fatal("DEL is ASCII")
	}
	if !hasNonASCII([]string{"ok\n", "\u00a0\n"}) {
		t.Fatal("NBSP is not ASCII")
	}
	if !hasNonASCII([]string{"\xff"}) {
		t.Fatal("invalid byte must count as non-ASCII")
	}
}
