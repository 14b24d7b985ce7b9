// Package level decodes level and design documents served by the
// Fantastic Contraption level service.
//
// The service answers with a retrieveLevel document:
//
//	<retrieveLevel>
//	  <levelId>1234</levelId>
//	  <levelNumber>0</levelNumber>
//	  <name>Bridge</name>
//	  <level>
//	    <levelBlocks> ... </levelBlocks>
//	    <playerBlocks> ... </playerBlocks>
//	    <start> ... </start>
//	    <end> ... </end>
//	  </level>
//	</retrieveLevel>
//
// A bare <level> root is accepted as well. Each child of levelBlocks and
// playerBlocks is one block whose element name is its tag:
//
//	<NoSpinWheel id="3">
//	  <rotation>0</rotation>
//	  <position><x>10</x><y>20</y></position>
//	  <width>40</width>
//	  <height>40</height>
//	  <goalBlock>true</goalBlock>
//	  <joints><jointedTo>1</jointedTo></joints>
//	</NoSpinWheel>
//
// [Parse] keeps field text as written (trimmed of surrounding whitespace) so
// that [blocks.Emit] can reproduce it exactly. A block without a joints
// element has no joints; any other missing field is a MALFORMED_FIELD error.
package level
