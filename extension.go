// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package gmx

import "fmt"

// maxExtensionFunctionArguments is the fixed number of argument-type slots
// every extension function record carries on the wire (§4.4): only the
// first num_arguments of them are real, the rest are padding that must
// still be consumed to keep the stream aligned.
const maxExtensionFunctionArguments = 17

// readExtensions implements the Extension list (§4.4): a flat, unversioned
// (wrapper version always 700) list of extensions, each carrying one or
// more files, each file carrying its own functions and constants plus an
// opaque payload. All of the opaque payloads for every file in every
// extension are packed into a single blob at the end of the list, itself
// wrapped in deobfuscateExtensionBlob; each file's Data is then read out of
// that shared decrypted blob in file order via NextCompressed.
func (c *decodeCtx) readExtensions(r *Reader) error {
	version, err := r.NextU32()
	if err != nil {
		return err
	}
	if version != 700 {
		return fmt.Errorf("%w: extension list version %d", ErrVersionMismatch, version)
	}
	count, err := r.NextU32()
	if err != nil {
		return err
	}

	extensions := make([]Extension, count)
	for i := range extensions {
		if err := readOneExtension(r, &extensions[i]); err != nil {
			return err
		}
	}

	encrypted, err := r.NextBlob()
	if err != nil {
		return err
	}
	decrypted, err := deobfuscateExtensionBlob(encrypted)
	if err != nil {
		return err
	}
	blob := NewReader(byteReader(decrypted))
	for i := range extensions {
		for j := range extensions[i].Files {
			data, err := blob.NextCompressed()
			if err != nil {
				return err
			}
			extensions[i].Files[j].Data = data
		}
	}

	c.p.Extensions = extensions
	return nil
}

func readOneExtension(r *Reader, ext *Extension) error {
	version, err := r.NextU32()
	if err != nil {
		return err
	}
	if version != 700 {
		return fmt.Errorf("%w: extension record version %d", ErrVersionMismatch, version)
	}
	if ext.Name, err = r.NextString(); err != nil {
		return err
	}
	if ext.TempName, err = r.NextString(); err != nil {
		return err
	}

	fileCount, err := r.NextU32()
	if err != nil {
		return err
	}
	ext.Files = make([]ExtensionFile, fileCount)
	for i := range ext.Files {
		if err := readOneExtensionFile(r, &ext.Files[i]); err != nil {
			return err
		}
	}
	return nil
}

func readOneExtensionFile(r *Reader, file *ExtensionFile) error {
	version, err := r.NextU32()
	if err != nil {
		return err
	}
	if version != 700 {
		return fmt.Errorf("%w: extension file record version %d", ErrVersionMismatch, version)
	}
	if file.Name, err = r.NextString(); err != nil {
		return err
	}
	if file.FileType, err = r.NextU32(); err != nil {
		return err
	}
	if file.InitializationFunc, err = r.NextString(); err != nil {
		return err
	}
	if file.FinalizationFunc, err = r.NextString(); err != nil {
		return err
	}

	functionCount, err := r.NextU32()
	if err != nil {
		return err
	}
	file.Functions = make([]ExtensionFunction, functionCount)
	for i := range file.Functions {
		if err := readOneExtensionFunction(r, &file.Functions[i]); err != nil {
			return err
		}
	}

	constantCount, err := r.NextU32()
	if err != nil {
		return err
	}
	file.Constants = make([]Constant, constantCount)
	for i := range file.Constants {
		if file.Constants[i].Name, err = r.NextString(); err != nil {
			return err
		}
		if file.Constants[i].Value, err = r.NextString(); err != nil {
			return err
		}
	}
	return nil
}

func readOneExtensionFunction(r *Reader, fn *ExtensionFunction) error {
	version, err := r.NextU32()
	if err != nil {
		return err
	}
	if version != 700 {
		return fmt.Errorf("%w: extension function record version %d", ErrVersionMismatch, version)
	}
	if fn.Name, err = r.NextString(); err != nil {
		return err
	}
	if fn.ExternalName, err = r.NextString(); err != nil {
		return err
	}
	if fn.CallingConvention, err = r.NextU32(); err != nil {
		return err
	}
	if fn.ID, err = r.NextU32(); err != nil {
		return err
	}

	numArguments, err := r.NextI32()
	if err != nil {
		return err
	}
	for i := 0; i < maxExtensionFunctionArguments; i++ {
		argumentType, err := r.NextU32()
		if err != nil {
			return err
		}
		if int32(i) < numArguments {
			fn.ArgumentTypes = append(fn.ArgumentTypes, argumentType)
		}
	}

	if fn.ReturnType, err = r.NextU32(); err != nil {
		return err
	}
	return nil
}
