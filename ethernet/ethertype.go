package ethernet

import (
	"errors"
	"strconv"
	"strings"

	"github.com/fako1024/slimframe/match"
)

// EtherType denotes the (classified) protocol encapsulated in the payload of the
// ethernet frame. Only codes of the closed set below are recognized, any other wire
// value fails classification
type EtherType uint8

const (

	// EtherTypeInvalid denotes an unset / unrecognized EtherType. It is never returned
	// from a successful classification
	EtherTypeInvalid EtherType = iota

	EtherTypeIPv4                  // 0x0800
	EtherTypeARP                   // 0x0806
	EtherTypeWakeOnLAN             // 0x0842
	EtherTypeAVTP                  // 0x22F0
	EtherTypeSRP                   // 0x22EA
	EtherTypeRARP                  // 0x8035
	EtherTypeAppleTalk             // 0x809B
	EtherTypeAARP                  // 0x80F3
	EtherTypeSLPP                  // 0x8102
	EtherTypeVLACP                 // 0x8103
	EtherTypeIPX                   // 0x8137
	EtherTypeQNXQnet               // 0x8204
	EtherTypeIPv6                  // 0x86DD
	EtherTypeEthernetFlowControl   // 0x8808
	EtherTypeEthernetSlowProtocols // 0x8809
	EtherTypeCobraNet              // 0x8819
	EtherTypeMPLSUnicast           // 0x8847
	EtherTypeMPLSMulticast         // 0x8848
	EtherTypePPPoEDiscovery        // 0x8863
	EtherTypePPPoESession          // 0x8864
	EtherTypeHomePlug1_0MME        // 0x887B
	EtherTypeEAPOverLAN            // 0x888E
	EtherTypePROFINET              // 0x8892
	EtherTypeHyperSCSI             // 0x889A
	EtherTypeAoE                   // 0x88A2
	EtherTypeEtherCAT              // 0x88A4
	EtherTypeEthernetPowerlink     // 0x88AB
	EtherTypeGOOSE                 // 0x88B8
	EtherTypeGSEManagement         // 0x88B9
	EtherTypeSV                    // 0x88BA
	EtherTypeLLDP                  // 0x88CC
	EtherTypeSERCOS3               // 0x88CD
	EtherTypeHomePlugGreenPHY      // 0x88E1
	EtherTypeMRP                   // 0x88E3
	EtherTypeMACsec                // 0x88E5
	EtherTypePBB                   // 0x88E7
	EtherTypePTP                   // 0x88F7
	EtherTypeNCSI                  // 0x88F8
	EtherTypePRP                   // 0x88FB
	EtherTypeFCoE                  // 0x8906
	EtherTypeMediaxtream           // 0x8912
	EtherTypeFIP                   // 0x8914
	EtherTypeRoCE                  // 0x8915
	EtherTypeTTE                   // 0x891D
	EtherTypeHSR                   // 0x892F
	EtherTypeECTP                  // 0x9000
	EtherTypeRTag                  // 0xF1C1
)

var etherTypeEntries = []match.Entry[uint16, EtherType]{
	{Code: 0x0800, Variant: EtherTypeIPv4},
	{Code: 0x0806, Variant: EtherTypeARP},
	{Code: 0x0842, Variant: EtherTypeWakeOnLAN},
	{Code: 0x22F0, Variant: EtherTypeAVTP},
	{Code: 0x22EA, Variant: EtherTypeSRP},
	{Code: 0x8035, Variant: EtherTypeRARP},
	{Code: 0x809B, Variant: EtherTypeAppleTalk},
	{Code: 0x80F3, Variant: EtherTypeAARP},
	{Code: 0x8102, Variant: EtherTypeSLPP},
	{Code: 0x8103, Variant: EtherTypeVLACP},
	{Code: 0x8137, Variant: EtherTypeIPX},
	{Code: 0x8204, Variant: EtherTypeQNXQnet},
	{Code: 0x86DD, Variant: EtherTypeIPv6},
	{Code: 0x8808, Variant: EtherTypeEthernetFlowControl},
	{Code: 0x8809, Variant: EtherTypeEthernetSlowProtocols},
	{Code: 0x8819, Variant: EtherTypeCobraNet},
	{Code: 0x8847, Variant: EtherTypeMPLSUnicast},
	{Code: 0x8848, Variant: EtherTypeMPLSMulticast},
	{Code: 0x8863, Variant: EtherTypePPPoEDiscovery},
	{Code: 0x8864, Variant: EtherTypePPPoESession},
	{Code: 0x887B, Variant: EtherTypeHomePlug1_0MME},
	{Code: 0x888E, Variant: EtherTypeEAPOverLAN},
	{Code: 0x8892, Variant: EtherTypePROFINET},
	{Code: 0x889A, Variant: EtherTypeHyperSCSI},
	{Code: 0x88A2, Variant: EtherTypeAoE},
	{Code: 0x88A4, Variant: EtherTypeEtherCAT},
	{Code: 0x88AB, Variant: EtherTypeEthernetPowerlink},
	{Code: 0x88B8, Variant: EtherTypeGOOSE},
	{Code: 0x88B9, Variant: EtherTypeGSEManagement},
	{Code: 0x88BA, Variant: EtherTypeSV},
	{Code: 0x88CC, Variant: EtherTypeLLDP},
	{Code: 0x88CD, Variant: EtherTypeSERCOS3},
	{Code: 0x88E1, Variant: EtherTypeHomePlugGreenPHY},
	{Code: 0x88E3, Variant: EtherTypeMRP},
	{Code: 0x88E5, Variant: EtherTypeMACsec},
	{Code: 0x88E7, Variant: EtherTypePBB},
	{Code: 0x88F7, Variant: EtherTypePTP},
	{Code: 0x88F8, Variant: EtherTypeNCSI},
	{Code: 0x88FB, Variant: EtherTypePRP},
	{Code: 0x8906, Variant: EtherTypeFCoE},
	{Code: 0x8912, Variant: EtherTypeMediaxtream},
	{Code: 0x8914, Variant: EtherTypeFIP},
	{Code: 0x8915, Variant: EtherTypeRoCE},
	{Code: 0x891D, Variant: EtherTypeTTE},
	{Code: 0x892F, Variant: EtherTypeHSR},
	{Code: 0x9000, Variant: EtherTypeECTP},
	{Code: 0xF1C1, Variant: EtherTypeRTag},
}

var etherTypeNames = [...]string{
	EtherTypeInvalid:               "Invalid",
	EtherTypeIPv4:                  "IPv4",
	EtherTypeARP:                   "ARP",
	EtherTypeWakeOnLAN:             "WakeOnLAN",
	EtherTypeAVTP:                  "AVTP",
	EtherTypeSRP:                   "SRP",
	EtherTypeRARP:                  "RARP",
	EtherTypeAppleTalk:             "AppleTalk",
	EtherTypeAARP:                  "AARP",
	EtherTypeSLPP:                  "SLPP",
	EtherTypeVLACP:                 "VLACP",
	EtherTypeIPX:                   "IPX",
	EtherTypeQNXQnet:               "QNXQnet",
	EtherTypeIPv6:                  "IPv6",
	EtherTypeEthernetFlowControl:   "EthernetFlowControl",
	EtherTypeEthernetSlowProtocols: "EthernetSlowProtocols",
	EtherTypeCobraNet:              "CobraNet",
	EtherTypeMPLSUnicast:           "MPLSUnicast",
	EtherTypeMPLSMulticast:         "MPLSMulticast",
	EtherTypePPPoEDiscovery:        "PPPoEDiscovery",
	EtherTypePPPoESession:          "PPPoESession",
	EtherTypeHomePlug1_0MME:        "HomePlug1_0MME",
	EtherTypeEAPOverLAN:            "EAPOverLAN",
	EtherTypePROFINET:              "PROFINET",
	EtherTypeHyperSCSI:             "HyperSCSI",
	EtherTypeAoE:                   "AoE",
	EtherTypeEtherCAT:              "EtherCAT",
	EtherTypeEthernetPowerlink:     "EthernetPowerlink",
	EtherTypeGOOSE:                 "GOOSE",
	EtherTypeGSEManagement:         "GSEManagement",
	EtherTypeSV:                    "SV",
	EtherTypeLLDP:                  "LLDP",
	EtherTypeSERCOS3:               "SERCOS3",
	EtherTypeHomePlugGreenPHY:      "HomePlugGreenPHY",
	EtherTypeMRP:                   "MRP",
	EtherTypeMACsec:                "MACsec",
	EtherTypePBB:                   "PBB",
	EtherTypePTP:                   "PTP",
	EtherTypeNCSI:                  "NCSI",
	EtherTypePRP:                   "PRP",
	EtherTypeFCoE:                  "FCoE",
	EtherTypeMediaxtream:           "Mediaxtream",
	EtherTypeFIP:                   "FIP",
	EtherTypeRoCE:                  "RoCE",
	EtherTypeTTE:                   "TTE",
	EtherTypeHSR:                   "HSR",
	EtherTypeECTP:                  "ECTP",
	EtherTypeRTag:                  "RTag",
}

// etherTypes holds the classification table for all 2^16 possible wire values,
// populated once on package initialization and read-only afterwards
var etherTypes = match.MustNewTable("ether type", etherTypeEntries...)

// EtherTypes returns a classification facility for the EtherType field
func EtherTypes() match.Matcher[uint16, EtherType] {
	return etherTypes
}

// LookupEtherType classifies a raw (host byte order) EtherType wire value
func LookupEtherType(raw uint16) (EtherType, error) {
	return etherTypes.Lookup(raw)
}

// Code returns the wire code of the EtherType (0 for EtherTypeInvalid)
func (t EtherType) Code() uint16 {
	code, _ := etherTypes.Code(t)
	return code
}

// IsValid returns if the EtherType is a recognized one
func (t EtherType) IsValid() bool {
	return t != EtherTypeInvalid && int(t) < len(etherTypeNames)
}

// HasValidIPLayer determines if the ethernet frame has a valid IPv4 or IPv6 layer
func (t EtherType) HasValidIPLayer() bool {
	return t == EtherTypeIPv4 || t == EtherTypeIPv6
}

// String returns a human-readable name of the EtherType
func (t EtherType) String() string {
	if int(t) < len(etherTypeNames) {
		return etherTypeNames[t]
	}
	return "EtherType(" + strconv.Itoa(int(t)) + ")"
}

// AllEtherTypes returns all recognized EtherTypes
func AllEtherTypes() []EtherType {
	all := make([]EtherType, len(etherTypeEntries))
	for i, e := range etherTypeEntries {
		all[i] = e.Variant
	}
	return all
}

// ParseEtherType returns the recognized EtherType matching the provided name (as
// returned by String(), case-insensitive)
func ParseEtherType(name string) (EtherType, error) {
	for t := EtherTypeIPv4; int(t) < len(etherTypeNames); t++ {
		if strings.EqualFold(etherTypeNames[t], name) {
			return t, nil
		}
	}
	return EtherTypeInvalid, errors.New("unknown ether type: " + strconv.Quote(name))
}
