/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

// Package version carries the build-time identity of a binary (package name,
// release tag, commit hash, build date, license) and renders it for banners,
// --version output and monitor info payloads.
package version

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"time"
)

// License identifies the open-source license a binary is distributed under.
type License uint8

const (
	License_None License = iota
	License_MIT
	License_Apache_v2
	License_GNU_GPL_v3
	License_GNU_Affero_GPL_v3
	License_BSD_v3
)

func (l License) String() string {
	switch l {
	case License_MIT:
		return "MIT"
	case License_Apache_v2:
		return "Apache License 2.0"
	case License_GNU_GPL_v3:
		return "GNU GPL v3"
	case License_GNU_Affero_GPL_v3:
		return "GNU AFFERO GPL v3"
	case License_BSD_v3:
		return "BSD 3-Clause"
	default:
		return "Unlicensed"
	}
}

func (l License) legal() string {
	switch l {
	case License_MIT:
		return "Permission is hereby granted, free of charge, to use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of the Software."
	case License_Apache_v2:
		return "Licensed under the Apache License, Version 2.0. You may not use this file except in compliance with the License."
	case License_GNU_GPL_v3:
		return "This program is free software: you can redistribute it and/or modify it under the terms of the GNU General Public License v3."
	case License_GNU_Affero_GPL_v3:
		return "This program is free software: you can redistribute it and/or modify it under the terms of the GNU AFFERO General Public License v3."
	case License_BSD_v3:
		return "Redistribution and use in source and binary forms, with or without modification, are permitted under the 3-Clause BSD License."
	default:
		return "All rights reserved."
	}
}

// Version exposes the identity of a build: package name, release, build hash,
// license and the metadata needed to print a banner or a monitor info payload.
type Version interface {
	GetPackage() string
	GetDescription() string
	GetPrefix() string
	GetAuthor() string
	GetBuild() string
	GetRelease() string
	GetDate() string
	GetTime() time.Time
	GetAppId() string
	GetRootPackagePath() string
	GetLicenseName() string
	GetLicenseLegal(other ...License) string
	GetLicenseBoiler() string
	GetLicenseFull() string
	GetHeader() string
	GetInfo() string
}

type version struct {
	license     License
	pkg         string
	description string
	date        time.Time
	build       string
	release     string
	author      string
	prefix      string
	rootPath    string
}

// NewVersion builds a Version descriptor. ref is any value whose package path
// identifies the module root; numSubPackage trims that many trailing path
// segments to reach the repository root (0 keeps the full package path).
func NewVersion(license License, pkg, description, date, build, release, author, prefix string, ref interface{}, numSubPackage int) Version {
	t, err := time.Parse(time.RFC3339, date)
	if err != nil {
		t, err = time.Parse("2006-01-02", date)
	}
	if err != nil {
		t = time.Now()
	}

	root := reflect.TypeOf(ref).PkgPath()
	if numSubPackage > 0 {
		parts := strings.Split(root, "/")
		if numSubPackage < len(parts) {
			root = strings.Join(parts[:len(parts)-numSubPackage], "/")
		}
	}

	return &version{
		license:     license,
		pkg:         pkg,
		description: description,
		date:        t,
		build:       build,
		release:     release,
		author:      author,
		prefix:      prefix,
		rootPath:    root,
	}
}

func (v *version) GetPackage() string     { return v.pkg }
func (v *version) GetDescription() string { return v.description }
func (v *version) GetPrefix() string      { return v.prefix }
func (v *version) GetAuthor() string      { return v.author }
func (v *version) GetBuild() string       { return v.build }
func (v *version) GetRelease() string     { return v.release }
func (v *version) GetDate() string        { return v.date.Format(time.RFC1123) }
func (v *version) GetTime() time.Time     { return v.date }
func (v *version) GetRootPackagePath() string {
	return v.rootPath
}

func (v *version) GetAppId() string {
	return fmt.Sprintf("%s-%s [Runtime: %s/%s %s]", v.pkg, v.release, runtime.GOOS, runtime.GOARCH, runtime.Version())
}

func (v *version) GetLicenseName() string {
	return v.license.String()
}

func (v *version) GetLicenseLegal(other ...License) string {
	lic := append([]License{v.license}, other...)
	txt := make([]string, 0, len(lic))

	for _, l := range lic {
		txt = append(txt, fmt.Sprintf("%s: %s", l.String(), l.legal()))
	}

	return strings.Join(txt, "\n")
}

func (v *version) GetLicenseBoiler() string {
	return fmt.Sprintf("Copyright (c) %s %s\n\n%s", v.date.Format("2006"), v.author, v.license.legal())
}

func (v *version) GetLicenseFull() string {
	return fmt.Sprintf("%s\n\n%s", v.GetLicenseBoiler(), v.GetLicenseName())
}

func (v *version) GetHeader() string {
	return fmt.Sprintf("%s %s (build %s)", v.pkg, v.release, v.build)
}

func (v *version) GetInfo() string {
	return fmt.Sprintf("Package: %s\nRelease: %s\nBuild: %s\nDate: %s\nLicense: %s", v.pkg, v.release, v.build, v.GetDate(), v.GetLicenseName())
}
